package models

import "time"

// Teacher defines the teacher profile model based on the 'teachers' table.
type Teacher struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	TeacherNumber string    `json:"teacherNumber" db:"teacher_number"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Address       *string   `json:"address,omitempty" db:"address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// FullName returns the display name shown on course listings.
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
