package dto

import (
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
)

// CreateCourseRequest represents course creation. Teacher assignment is
// optional; when a teacherId is supplied it must resolve to a teacher.
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=20"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=10"`
	TeacherID   *int64  `json:"teacherId,omitempty" binding:"omitempty,gte=1"`
}

// UpdateCourseRequest represents a course update
type UpdateCourseRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=20"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=10"`
	TeacherID   *int64  `json:"teacherId,omitempty" binding:"omitempty,gte=1"`
}

// AssignTeacherRequest assigns a teacher to an existing course
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required,gte=1"`
}

// CourseResponse represents course information returned to clients
type CourseResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	TeacherID   *int64    `json:"teacherId,omitempty"`
	TeacherName *string   `json:"teacherName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TeacherCourseResponse represents a course row in a teacher's own listing
type TeacherCourseResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Description   *string   `json:"description,omitempty"`
	Credits       int       `json:"credits"`
	CreatedAt     time.Time `json:"createdAt"`
	EnrolledCount int       `json:"enrolledStudentsCount"`
}

// NewCourseResponse maps a course model (with optional teacher relation)
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Credits:     c.Credits,
		TeacherID:   c.TeacherID,
		CreatedAt:   c.CreatedAt,
	}
	if c.Teacher != nil {
		name := c.Teacher.FullName()
		resp.TeacherName = &name
	}
	return resp
}

// NewTeacherCourseResponse maps a course model for teacher listings
func NewTeacherCourseResponse(c *models.Course) TeacherCourseResponse {
	return TeacherCourseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		Description:   c.Description,
		Credits:       c.Credits,
		CreatedAt:     c.CreatedAt,
		EnrolledCount: c.EnrolledCount,
	}
}
