package dto

import "time"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a student self-registration request. The
// credential and the student profile are created together or not at all.
type RegisterRequest struct {
	Username      string    `json:"username" binding:"required,min=3,max=50"`
	Password      string    `json:"password" binding:"required,min=8"`
	FirstName     string    `json:"firstName" binding:"required,max=100"`
	LastName      string    `json:"lastName" binding:"required,max=100"`
	Email         string    `json:"email" binding:"required,email,max=100"`
	StudentNumber string    `json:"studentNumber" binding:"required,max=20"`
	Phone         *string   `json:"phone,omitempty" binding:"omitempty,max=20"`
	DateOfBirth   time.Time `json:"dateOfBirth" binding:"required"`
	Address       *string   `json:"address,omitempty" binding:"omitempty,max=200"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token         string  `json:"token"`
	TokenType     string  `json:"tokenType" example:"Bearer"`
	ExpiresIn     int64   `json:"expiresIn"`
	UserID        int64   `json:"userId"`
	Username      string  `json:"username"`
	Role          string  `json:"role" example:"STUDENT"`
	StudentNumber *string `json:"studentNumber,omitempty"`
}

// ProfileResponse represents the identity behind a verified token. Admins
// carry no profile section; students and teachers carry exactly one.
type ProfileResponse struct {
	UserID   int64            `json:"userId"`
	Username string           `json:"username"`
	Role     string           `json:"role"`
	Student  *StudentResponse `json:"student,omitempty"`
	Teacher  *TeacherResponse `json:"teacher,omitempty"`
}
