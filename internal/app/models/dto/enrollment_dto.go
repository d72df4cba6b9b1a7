package dto

import (
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
)

// EnrollStudentRequest enrolls a student into a course
type EnrollStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gte=1"`
	CourseID  int64 `json:"courseId" binding:"required,gte=1"`
}

// UpdateGradeRequest records a grade on an enrollment
type UpdateGradeRequest struct {
	Grade       *float64 `json:"grade,omitempty" binding:"omitempty,gte=0,lte=100"`
	LetterGrade *string  `json:"letterGrade,omitempty" binding:"omitempty,max=2"`
}

// EnrollmentResponse represents an enrollment joined with display names
type EnrollmentResponse struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"studentId"`
	CourseID    int64      `json:"courseId"`
	StudentName string     `json:"studentName,omitempty"`
	CourseName  string     `json:"courseName,omitempty"`
	CourseCode  string     `json:"courseCode,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Grade       *float64   `json:"grade,omitempty"`
	LetterGrade *string    `json:"letterGrade,omitempty"`
}

// NewEnrollmentResponse maps an enrollment model
func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID,
		StudentID:   e.StudentID,
		CourseID:    e.CourseID,
		StudentName: e.StudentName,
		CourseName:  e.CourseName,
		CourseCode:  e.CourseCode,
		EnrolledAt:  e.EnrolledAt,
		UpdatedAt:   e.UpdatedAt,
		Grade:       e.Grade,
		LetterGrade: e.LetterGrade,
	}
}

// NewEnrollmentResponses maps a slice of enrollment models
func NewEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, NewEnrollmentResponse(e))
	}
	return responses
}
