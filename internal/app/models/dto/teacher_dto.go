package dto

import (
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
)

// CreateTeacherRequest represents admin-side teacher provisioning. It also
// creates the owning credential in the same transaction.
type CreateTeacherRequest struct {
	Username      string  `json:"username" binding:"required,min=3,max=50"`
	Password      string  `json:"password" binding:"required,min=8"`
	FirstName     string  `json:"firstName" binding:"required,max=100"`
	LastName      string  `json:"lastName" binding:"required,max=100"`
	Email         string  `json:"email" binding:"required,email,max=100"`
	TeacherNumber string  `json:"teacherNumber" binding:"required,max=20"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Address       *string `json:"address,omitempty" binding:"omitempty,max=200"`
}

// UpdateTeacherRequest represents a teacher profile update
type UpdateTeacherRequest struct {
	FirstName     string  `json:"firstName" binding:"required,max=100"`
	LastName      string  `json:"lastName" binding:"required,max=100"`
	Email         string  `json:"email" binding:"required,email,max=100"`
	TeacherNumber string  `json:"teacherNumber" binding:"required,max=20"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Address       *string `json:"address,omitempty" binding:"omitempty,max=200"`
}

// TeacherResponse represents teacher information returned to clients
type TeacherResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	TeacherNumber string    `json:"teacherNumber"`
	Phone         *string   `json:"phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Username      string    `json:"username,omitempty"`
}

// NewTeacherResponse maps a teacher model (with optional user relation)
func NewTeacherResponse(t *models.Teacher) TeacherResponse {
	resp := TeacherResponse{
		ID:            t.ID,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Email:         t.Email,
		TeacherNumber: t.TeacherNumber,
		Phone:         t.Phone,
		Address:       t.Address,
		CreatedAt:     t.CreatedAt,
	}
	if t.User != nil {
		resp.Username = t.User.Username
	}
	return resp
}
