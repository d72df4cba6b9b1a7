package dto

import (
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
)

// CreateStudentRequest represents admin-side student provisioning. It also
// creates the owning credential in the same transaction.
type CreateStudentRequest struct {
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

// UpdateStudentRequest represents a student profile update
type UpdateStudentRequest struct {
	FirstName     string    `json:"firstName" binding:"required,max=100"`
	LastName      string    `json:"lastName" binding:"required,max=100"`
	Email         string    `json:"email" binding:"required,email,max=100"`
	StudentNumber string    `json:"studentNumber" binding:"required,max=20"`
	Phone         *string   `json:"phone,omitempty" binding:"omitempty,max=20"`
	DateOfBirth   time.Time `json:"dateOfBirth" binding:"required"`
	Address       *string   `json:"address,omitempty" binding:"omitempty,max=200"`
}

// StudentResponse represents student information returned to clients
type StudentResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	StudentNumber string    `json:"studentNumber"`
	Phone         *string   `json:"phone,omitempty"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Username      string    `json:"username,omitempty"`
}

// NewStudentResponse maps a student model (with optional user relation)
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:            s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		StudentNumber: s.StudentNumber,
		Phone:         s.Phone,
		DateOfBirth:   s.DateOfBirth,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
	}
	if s.User != nil {
		resp.Username = s.User.Username
	}
	return resp
}
