package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/auth"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{3,50}$`)

// AuthService handles login, registration and profile resolution
type AuthService struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
	teacherRepo repositories.ITeacherRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	teacherRepo repositories.ITeacherRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// validateUsername checks the username shape beyond binding tags
func (s *AuthService) validateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return apperrors.NewValidationError("username must be 3-50 characters of letters, digits, dot, dash or underscore")
	}
	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password must contain at least one letter and one digit")
	}

	return nil
}

// Login verifies credentials and issues a token. A missing user and a wrong
// password both return ErrInvalidCredentials so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("username", user.Username).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(ctx, user)
}

// RegisterStudent self-registers a student: one credential and one profile,
// created atomically. The role is always STUDENT regardless of input.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if err := s.validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	// Pre-checks give friendly errors; the unique indexes remain the
	// authoritative guard under concurrent registration.
	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}
	if taken, err := s.studentRepo.EmailExists(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if taken, err := s.studentRepo.NumberExists(ctx, req.StudentNumber); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrStudentNumberAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}
	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		StudentNumber: req.StudentNumber,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		Address:       req.Address,
	}

	if err := s.studentRepo.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Student self-registered")
	return s.buildAuthResponse(ctx, user)
}

// CreateAdmin provisions a standalone admin credential
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := s.validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Admin credential created")
	return user, nil
}

// GetProfile resolves the identity behind a verified token
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		sr := dto.NewStudentResponse(student)
		resp.Student = &sr
	case models.RoleTeacher:
		teacher, err := s.teacherRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		tr := dto.NewTeacherResponse(teacher)
		resp.Teacher = &tr
	}

	return resp, nil
}

func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	resp := &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
	}

	if user.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if err == nil {
			resp.StudentNumber = &student.StudentNumber
		}
	}

	return resp, nil
}
