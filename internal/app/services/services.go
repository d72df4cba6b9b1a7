// Package services contains the business rules: validation beyond binding
// tags, referential checks against the repositories and mapping to DTOs.
package services

import (
	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/auth"
)

// Services bundles every service for dependency injection
type Services struct {
	Auth       *AuthService
	Student    *StudentService
	Teacher    *TeacherService
	Course     *CourseService
	Enrollment *EnrollmentService
}

// NewServices wires the services onto the repository container
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Student, repos.Teacher, jwtService, logger),
		Student:    NewStudentService(repos.Student, repos.User, repos.Enrollment, logger),
		Teacher:    NewTeacherService(repos.Teacher, repos.User, repos.Course, logger),
		Course:     NewCourseService(repos.Course, repos.Teacher, logger),
		Enrollment: NewEnrollmentService(repos.Enrollment, repos.Student, repos.Course, repos.Teacher, logger),
	}
}
