package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
)

// EnrollmentService handles the student-course enrollment ledger
type EnrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	teacherRepo    repositories.ITeacherRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.IEnrollmentRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	teacherRepo repositories.ITeacherRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		teacherRepo:    teacherRepo,
		logger:         logger,
	}
}

// Enroll adds a student to a course. Both sides must exist and the pair must
// be new; the unique index settles concurrent duplicates.
func (s *EnrollmentService) Enroll(ctx context.Context, req *dto.EnrollStudentRequest) (*dto.EnrollmentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	if enrolled, err := s.enrollmentRepo.Exists(ctx, req.StudentID, req.CourseID); err != nil {
		return nil, fmt.Errorf("enrollment failed: %w", err)
	} else if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	enrollment.StudentName = student.FullName()
	enrollment.CourseName = course.Name
	enrollment.CourseCode = course.Code

	s.logger.Info().Int64("studentID", req.StudentID).Int64("courseID", req.CourseID).Msg("Student enrolled")
	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// List returns enrollments newest first, optionally filtered by course. A
// course filter that resolves to no course is an error, not an empty list.
func (s *EnrollmentService) List(ctx context.Context, courseID *int64) ([]dto.EnrollmentResponse, error) {
	if courseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *courseID); err != nil {
			return nil, err
		}
	}

	enrollments, err := s.enrollmentRepo.ListAll(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponses(enrollments), nil
}

// CourseRoster lists a course's enrollments ordered by student name
func (s *EnrollmentService) CourseRoster(ctx context.Context, courseID int64) ([]dto.EnrollmentResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponses(enrollments), nil
}

// Remove deletes an enrollment by ID
func (s *EnrollmentService) Remove(ctx context.Context, id int64) error {
	return s.enrollmentRepo.Delete(ctx, id)
}

// UpdateGrade records a grade on an enrollment. Admins may grade anywhere;
// a teacher may only grade enrollments in courses assigned to them.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, id int64, callerUserID int64, callerRole models.Role, req *dto.UpdateGradeRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole == models.RoleTeacher {
		teacher, err := s.teacherRepo.GetByUserID(ctx, callerUserID)
		if err != nil {
			return nil, err
		}
		course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		if course.TeacherID == nil || *course.TeacherID != teacher.ID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	if err := s.enrollmentRepo.UpdateGrade(ctx, id, req.Grade, req.LetterGrade); err != nil {
		return nil, err
	}

	updated, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollmentID", id).Msg("Grade updated")
	resp := dto.NewEnrollmentResponse(updated)
	return &resp, nil
}
