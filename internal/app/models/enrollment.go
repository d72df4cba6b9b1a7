package models

import "time"

// Enrollment links a student to a course. The (student_id, course_id) pair
// is unique; a student cannot be enrolled in the same course twice.
type Enrollment struct {
	ID          int64      `json:"id" db:"id"`
	StudentID   int64      `json:"studentId" db:"student_id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	EnrolledAt  time.Time  `json:"enrolledAt" db:"enrolled_at"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	Grade       *float64   `json:"grade,omitempty" db:"grade"`
	LetterGrade *string    `json:"letterGrade,omitempty" db:"letter_grade"`

	// Joined display fields (populated by listing queries)
	StudentName string `json:"studentName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	CourseCode  string `json:"courseCode,omitempty"`
}
