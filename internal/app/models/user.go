package models

import "time"

// User defines the credential model based on the 'users' table. A user row
// is created only together with a profile (or by admin seeding) and deleted
// only by the cascading delete of its owning profile.
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Username     string    `json:"username" db:"username" example:"alice"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" example:"STUDENT"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
