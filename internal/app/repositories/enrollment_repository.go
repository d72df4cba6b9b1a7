package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/dberrors"
)

// IEnrollmentRepository defines enrollment database operations
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, courseID *int64) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	UpdateGrade(ctx context.Context, id int64, grade *float64, letterGrade *string) error
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an enrollment. The unique index on (student_id, course_id)
// is the authoritative duplicate guard under concurrency.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, enrolled_at`,
		enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.ID, &enrollment.EnrolledAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_course_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var e models.Enrollment
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, course_id, enrolled_at, updated_at, grade, letter_grade
		FROM enrollments
		WHERE id = $1`,
		id).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt, &e.UpdatedAt, &e.Grade, &e.LetterGrade)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &e, nil
}

// Exists checks whether the student is already enrolled in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	return exists, nil
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

func (r *EnrollmentRepository) queryEnrollments(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Enrollment, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt, &e.UpdatedAt,
			&e.Grade, &e.LetterGrade, &e.StudentName, &e.CourseName, &e.CourseCode)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *EnrollmentRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.student_id", "e.course_id", "e.enrolled_at", "e.updated_at",
		"e.grade", "e.letter_grade",
		"s.first_name || ' ' || s.last_name AS student_name",
		"c.name AS course_name", "c.code AS course_code").
		From("enrollments e").
		Join("students s ON s.id = e.student_id").
		Join("courses c ON c.id = e.course_id")
}

// ListAll lists enrollments, newest first, optionally filtered by course
func (r *EnrollmentRepository) ListAll(ctx context.Context, courseID *int64) ([]*models.Enrollment, error) {
	builder := r.baseSelect().OrderBy("e.enrolled_at DESC")
	if courseID != nil {
		builder = builder.Where(squirrel.Eq{"e.course_id": *courseID})
	}
	return r.queryEnrollments(ctx, builder)
}

// ListByCourse lists a course roster ordered by student name
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("s.first_name ASC", "s.last_name ASC")
	return r.queryEnrollments(ctx, builder)
}

// ListByStudent lists a student's enrollments with course details
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	builder := r.baseSelect().
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.code ASC")
	return r.queryEnrollments(ctx, builder)
}

// UpdateGrade records a grade on an enrollment and bumps updated_at
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, id int64, grade *float64, letterGrade *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments
		SET grade = $1, letter_grade = $2, updated_at = NOW()
		WHERE id = $3`,
		grade, letterGrade, id)

	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
