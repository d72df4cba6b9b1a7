package models

import "time"

// Student defines the student profile model based on the 'students' table.
// Exactly one user row owns each student row (unique user_id).
type Student struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	StudentNumber string    `json:"studentNumber" db:"student_number"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Address       *string   `json:"address,omitempty" db:"address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// FullName returns the display name used in rosters.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
