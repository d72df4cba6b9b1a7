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

// ICourseRepository defines course database operations
type ICourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	AssignTeacher(ctx context.Context, courseID, teacherID int64) error
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const courseColumns = "c.id, c.name, c.code, c.description, c.credits, c.teacher_id, c.created_at"

func scanCourse(row pgx.Row, withTeacher bool) (*models.Course, error) {
	var course models.Course
	dest := []interface{}{
		&course.ID, &course.Name, &course.Code, &course.Description,
		&course.Credits, &course.TeacherID, &course.CreatedAt,
	}
	var firstName, lastName *string
	if withTeacher {
		dest = append(dest, &firstName, &lastName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withTeacher && course.TeacherID != nil && firstName != nil && lastName != nil {
		course.Teacher = &models.Teacher{
			ID:        *course.TeacherID,
			FirstName: *firstName,
			LastName:  *lastName,
		}
	}
	return &course, nil
}

// GetAll retrieves all courses with their teacher names when assigned
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns, "t.first_name", "t.last_name").
		From("courses c").
		LeftJoin("teachers t ON t.id = c.teacher_id").
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows, true)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetByID retrieves a course by ID with its teacher when assigned
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns, "t.first_name", "t.last_name").
		From("courses c").
		LeftJoin("teachers t ON t.id = c.teacher_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByTeacherID retrieves the courses taught by a teacher together with
// each course's enrolled student count.
func (r *CourseRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns, "COUNT(e.id) AS enrolled_count").
		From("courses c").
		LeftJoin("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		GroupBy("c.id").
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teacher courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID, &course.Name, &course.Code, &course.Description,
			&course.Credits, &course.TeacherID, &course.CreatedAt, &course.EnrolledCount)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// CodeExists checks if a course code already exists
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course code: %w", err)
	}

	return exists, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (name, code, description, credits, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		course.Name, course.Code, course.Description, course.Credits, course.TeacherID).
		Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// Update updates a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("code", course.Code).
		Set("description", course.Description).
		Set("credits", course.Credits).
		Set("teacher_id", course.TeacherID).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course together with its enrollments in one transaction
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting enrollments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		logger.Info().Int64("courseID", id).Msg("Course deleted with enrollments")
		return nil
	})
}

// AssignTeacher sets the teacher on a course
func (r *CourseRepository) AssignTeacher(ctx context.Context, courseID, teacherID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses SET teacher_id = $1 WHERE id = $2`,
		teacherID, courseID)

	if err != nil {
		return fmt.Errorf("error assigning teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
