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

// CourseService handles course management
type CourseService struct {
	courseRepo  repositories.ICourseRepository
	teacherRepo repositories.ITeacherRepository
	logger      zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	teacherRepo repositories.ITeacherRepository,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// resolveTeacher verifies a referenced teacher exists before a course points
// at it
func (s *CourseService) resolveTeacher(ctx context.Context, teacherID *int64) error {
	if teacherID == nil {
		return nil
	}
	if _, err := s.teacherRepo.GetByID(ctx, *teacherID); err != nil {
		return err
	}
	return nil
}

// GetAll lists all courses
func (s *CourseService) GetAll(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}
	return responses, nil
}

// GetByID retrieves one course
func (s *CourseService) GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// Create adds a course. Teacher assignment is optional at creation.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if taken, err := s.courseRepo.CodeExists(ctx, req.Code); err != nil {
		return nil, fmt.Errorf("course creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrCourseCodeAlreadyExists
	}

	if err := s.resolveTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Credits:     req.Credits,
		TeacherID:   req.TeacherID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, course.ID)
}

// Update modifies a course
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != course.Code {
		if taken, err := s.courseRepo.CodeExists(ctx, req.Code); err != nil {
			return nil, fmt.Errorf("course update failed: %w", err)
		} else if taken {
			return nil, apperrors.ErrCourseCodeAlreadyExists
		}
	}

	if err := s.resolveTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Code = req.Code
	course.Description = req.Description
	course.Credits = req.Credits
	course.TeacherID = req.TeacherID

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a course along with its enrollments
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

// AssignTeacher points a course at a teacher. Both sides must exist.
func (s *CourseService) AssignTeacher(ctx context.Context, courseID int64, req *dto.AssignTeacherRequest) (*dto.CourseResponse, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	if err := s.courseRepo.AssignTeacher(ctx, courseID, req.TeacherID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("teacherID", req.TeacherID).Msg("Teacher assigned to course")
	return s.GetByID(ctx, courseID)
}
