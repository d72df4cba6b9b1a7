package models

import "time"

// Course represents a course offering. Teacher assignment is optional;
// deleting the assigned teacher clears the reference instead of deleting
// the course.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	Credits     int       `json:"credits" db:"credits"`
	TeacherID   *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Teacher *Teacher `json:"teacher,omitempty"`

	// EnrolledCount is filled by listing queries for teacher views.
	EnrolledCount int `json:"enrolledCount,omitempty"`
}
