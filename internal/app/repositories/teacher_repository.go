package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/db"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/dberrors"
	"github.com/eakgun/sims-backend/internal/pkg/logger"
)

// ITeacherRepository defines teacher profile database operations
type ITeacherRepository interface {
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NumberExists(ctx context.Context, teacherNumber string) (bool, error)
	CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const teacherColumns = "t.id, t.user_id, t.first_name, t.last_name, t.email, t.teacher_number, t.phone, t.address, t.created_at"

func scanTeacher(row pgx.Row, withUsername bool) (*models.Teacher, error) {
	var teacher models.Teacher
	dest := []interface{}{
		&teacher.ID, &teacher.UserID, &teacher.FirstName, &teacher.LastName,
		&teacher.Email, &teacher.TeacherNumber, &teacher.Phone,
		&teacher.Address, &teacher.CreatedAt,
	}
	var username string
	if withUsername {
		dest = append(dest, &username)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withUsername {
		teacher.User = &models.User{ID: teacher.UserID, Username: username, Role: models.RoleTeacher}
	}
	return &teacher, nil
}

// GetAll retrieves all teachers joined with their credential's username
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns, "u.username").
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		OrderBy("t.last_name ASC", "t.first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows, true)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns, "u.username").
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetByUserID retrieves a teacher by its owning credential's ID
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns).
		From("teachers t").
		Where(squirrel.Eq{"t.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher by user query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// EmailExists checks if a teacher email already exists
func (r *TeacherRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teachers WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking teacher email: %w", err)
	}

	return exists, nil
}

// NumberExists checks if a teacher number already exists
func (r *TeacherRepository) NumberExists(ctx context.Context, teacherNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teachers WHERE teacher_number = $1)`,
		teacherNumber).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking teacher number: %w", err)
	}

	return exists, nil
}

// CreateWithUser inserts the credential and the teacher profile as one
// transaction, mirroring the student flow.
func (r *TeacherRepository) CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, password_hash, role)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
			user.Username, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
				return apperrors.ErrUsernameAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		teacher.UserID = user.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO teachers (user_id, first_name, last_name, email, teacher_number, phone, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			teacher.UserID, teacher.FirstName, teacher.LastName, teacher.Email,
			teacher.TeacherNumber, teacher.Phone, teacher.Address).
			Scan(&teacher.ID, &teacher.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			if dberrors.IsDuplicateConstraintError(err, "teachers_teacher_number_key") {
				return apperrors.ErrTeacherNumberAlreadyExists
			}
			return fmt.Errorf("error creating teacher: %w", err)
		}

		logger.Info().Int64("userID", user.ID).Str("teacherNumber", teacher.TeacherNumber).Msg("Teacher created")
		return nil
	})
}

// Update updates a teacher profile
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		Set("first_name", teacher.FirstName).
		Set("last_name", teacher.LastName).
		Set("email", teacher.Email).
		Set("teacher_number", teacher.TeacherNumber).
		Set("phone", teacher.Phone).
		Set("address", teacher.Address).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "teachers_teacher_number_key") {
			return apperrors.ErrTeacherNumberAlreadyExists
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// Delete removes a teacher and its credential in one transaction. Courses
// taught by the teacher are kept but detached so they can be reassigned.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `SELECT user_id FROM teachers WHERE id = $1`, id).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrTeacherNotFound
			}
			return fmt.Errorf("error resolving teacher: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE courses SET teacher_id = NULL WHERE teacher_id = $1`, id); err != nil {
			return fmt.Errorf("error detaching courses: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting teacher: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}

		logger.Info().Int64("teacherID", id).Int64("userID", userID).Msg("Teacher deleted, courses detached")
		return nil
	})
}
