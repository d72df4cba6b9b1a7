package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/auth"
)

// TeacherService handles teacher profile management and a teacher's own
// course view
type TeacherService struct {
	teacherRepo repositories.ITeacherRepository
	userRepo    repositories.IUserRepository
	courseRepo  repositories.ICourseRepository
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(
	teacherRepo repositories.ITeacherRepository,
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		logger:      logger,
	}
}

// GetAll lists all teachers
func (s *TeacherService) GetAll(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, dto.NewTeacherResponse(teacher))
	}
	return responses, nil
}

// GetByID retrieves one teacher
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

// Create provisions a teacher with its credential in one transaction
func (s *TeacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	username := strings.TrimSpace(req.Username)
	if !usernameRegex.MatchString(username) {
		return nil, apperrors.NewValidationError("username must be 3-50 characters of letters, digits, dot, dash or underscore")
	}

	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, fmt.Errorf("teacher creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}
	if taken, err := s.teacherRepo.EmailExists(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("teacher creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if taken, err := s.teacherRepo.NumberExists(ctx, req.TeacherNumber); err != nil {
		return nil, fmt.Errorf("teacher creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrTeacherNumberAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleTeacher,
	}
	teacher := &models.Teacher{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		TeacherNumber: req.TeacherNumber,
		Phone:         req.Phone,
		Address:       req.Address,
	}

	if err := s.teacherRepo.CreateWithUser(ctx, user, teacher); err != nil {
		return nil, err
	}

	teacher.User = user
	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

// Update modifies a teacher profile
func (s *TeacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != teacher.Email {
		if taken, err := s.teacherRepo.EmailExists(ctx, req.Email); err != nil {
			return nil, fmt.Errorf("teacher update failed: %w", err)
		} else if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	if req.TeacherNumber != teacher.TeacherNumber {
		if taken, err := s.teacherRepo.NumberExists(ctx, req.TeacherNumber); err != nil {
			return nil, fmt.Errorf("teacher update failed: %w", err)
		} else if taken {
			return nil, apperrors.ErrTeacherNumberAlreadyExists
		}
	}

	teacher.FirstName = req.FirstName
	teacher.LastName = req.LastName
	teacher.Email = req.Email
	teacher.TeacherNumber = req.TeacherNumber
	teacher.Phone = req.Phone
	teacher.Address = req.Address

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

// Delete removes a teacher and its credential; taught courses are detached,
// not deleted
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	return s.teacherRepo.Delete(ctx, id)
}

// GetOwnCourses lists the courses the calling teacher teaches, with
// enrolled student counts
func (s *TeacherService) GetOwnCourses(ctx context.Context, userID int64) ([]dto.TeacherCourseResponse, error) {
	teacher, err := s.teacherRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.GetByTeacherID(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TeacherCourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewTeacherCourseResponse(course))
	}
	return responses, nil
}
