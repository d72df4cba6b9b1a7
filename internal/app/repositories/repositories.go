// Package repositories contains the data access layer. Each repository maps
// pgx errors to domain errors so callers never see driver details.
package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository for dependency injection
type Repositories struct {
	User       IUserRepository
	Student    IStudentRepository
	Teacher    ITeacherRepository
	Course     ICourseRepository
	Enrollment IEnrollmentRepository
}

// NewRepositories creates the repository container backed by one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Student:    NewStudentRepository(db),
		Teacher:    NewTeacherRepository(db),
		Course:     NewCourseRepository(db),
		Enrollment: NewEnrollmentRepository(db),
	}
}
