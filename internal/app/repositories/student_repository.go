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

// IStudentRepository defines student profile database operations
type IStudentRepository interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NumberExists(ctx context.Context, studentNumber string) (bool, error)
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentColumns = "s.id, s.user_id, s.first_name, s.last_name, s.email, s.student_number, s.phone, s.date_of_birth, s.address, s.created_at"

func scanStudent(row pgx.Row, withUsername bool) (*models.Student, error) {
	var student models.Student
	dest := []interface{}{
		&student.ID, &student.UserID, &student.FirstName, &student.LastName,
		&student.Email, &student.StudentNumber, &student.Phone,
		&student.DateOfBirth, &student.Address, &student.CreatedAt,
	}
	var username string
	if withUsername {
		dest = append(dest, &username)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withUsername {
		student.User = &models.User{ID: student.UserID, Username: username, Role: models.RoleStudent}
	}
	return &student, nil
}

// GetAll retrieves all students joined with their credential's username
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns, "u.username").
		From("students s").
		Join("users u ON u.id = s.user_id").
		OrderBy("s.last_name ASC", "s.first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows, true)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns, "u.username").
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves a student by its owning credential's ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students s").
		Where(squirrel.Eq{"s.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by user query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// EmailExists checks if a student email already exists
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}

	return exists, nil
}

// NumberExists checks if a student number already exists
func (r *StudentRepository) NumberExists(ctx context.Context, studentNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_number = $1)`,
		studentNumber).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student number: %w", err)
	}

	return exists, nil
}

// CreateWithUser inserts the credential and the student profile as one
// transaction. If the profile insert fails the credential insert is rolled
// back too; concurrent duplicates lose on the unique indexes and surface as
// conflicts, never as partial writes.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
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

		student.UserID = user.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO students (user_id, first_name, last_name, email, student_number, phone, date_of_birth, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at`,
			student.UserID, student.FirstName, student.LastName, student.Email,
			student.StudentNumber, student.Phone, student.DateOfBirth, student.Address).
			Scan(&student.ID, &student.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			if dberrors.IsDuplicateConstraintError(err, "students_student_number_key") {
				return apperrors.ErrStudentNumberAlreadyExists
			}
			return fmt.Errorf("error creating student: %w", err)
		}

		logger.Info().Int64("userID", user.ID).Str("studentNumber", student.StudentNumber).Msg("Student registered")
		return nil
	})
}

// Update updates a student profile
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("email", student.Email).
		Set("student_number", student.StudentNumber).
		Set("phone", student.Phone).
		Set("date_of_birth", student.DateOfBirth).
		Set("address", student.Address).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_student_number_key") {
			return apperrors.ErrStudentNumberAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student profile, its enrollments and its credential in
// one transaction. The profile never outlives the credential and vice versa.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `SELECT user_id FROM students WHERE id = $1`, id).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error resolving student: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting enrollments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}

		logger.Info().Int64("studentID", id).Int64("userID", userID).Msg("Student deleted with credential and enrollments")
		return nil
	})
}
