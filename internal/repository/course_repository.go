package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/course-marketplace/internal/model"
)

var courseColumns = []string{"id", "title", "image_url", "price", "admin_id", "created_at", "updated_at"}

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course and fills in the generated fields.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	query, args, err := psql.Insert("courses").
		Columns("title", "image_url", "price", "admin_id").
		Values(c.Title, c.ImageURL, c.Price, c.AdminID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	query, args, err := psql.Select(courseColumns...).
		From("courses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCourse(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

// Update overwrites the mutable fields of the course identified by c.ID.
// AdminID is never written.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	query, args, err := updateCourseQuery(c)
	if err != nil {
		return err
	}

	updated, err := scanCourse(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update course: %w", err)
	}
	*c = *updated
	return nil
}

// ListByAdmin retrieves every course owned by the admin.
func (r *CourseRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Course, error) {
	return r.list(ctx, &adminID)
}

// ListAll retrieves every course.
func (r *CourseRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	return r.list(ctx, nil)
}

func (r *CourseRepository) list(ctx context.Context, adminID *uuid.UUID) ([]model.Course, error) {
	query, args, err := listCoursesQuery(adminID)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func updateCourseQuery(c *model.Course) (string, []any, error) {
	return psql.Update("courses").
		Set("title", c.Title).
		Set("image_url", c.ImageURL).
		Set("price", c.Price).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + strings.Join(courseColumns, ", ")).
		ToSql()
}

func listCoursesQuery(adminID *uuid.UUID) (string, []any, error) {
	q := psql.Select(courseColumns...).From("courses")
	if adminID != nil {
		q = q.Where(sq.Eq{"admin_id": *adminID})
	}
	return q.OrderBy("created_at ASC", "id ASC").ToSql()
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.ImageURL, &c.Price, &c.AdminID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
