package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/repository"
)

// Course errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("not the owner of this course")
)

// CourseStore persists courses.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
}

// CourseService handles course business logic, including the ownership gate on updates.
type CourseService struct {
	store CourseStore
	cache *CatalogCache
	log   zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(store CourseStore, cache *CatalogCache, log zerolog.Logger) *CourseService {
	return &CourseService{
		store: store,
		cache: cache,
		log:   logger.Component(log, "course_service"),
	}
}

// Create persists a course owned by adminID.
func (s *CourseService) Create(ctx context.Context, adminID uuid.UUID, req model.CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Price:    priceOf(req),
		AdminID:  adminID,
	}

	if err := s.store.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountGone
		}
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.log.Info().
		Str("course_id", course.ID.String()).
		Str("admin_id", adminID.String()).
		Msg("Course created")
	return course, nil
}

// Update overwrites title, image and price of a course owned by adminID.
// The owning admin and the course id never change.
func (s *CourseService) Update(ctx context.Context, adminID, courseID uuid.UUID, req model.CourseRequest) (*model.Course, error) {
	existing, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	if existing.AdminID != adminID {
		return nil, ErrNotCourseOwner
	}

	existing.Title = req.Title
	existing.ImageURL = req.ImageURL
	existing.Price = priceOf(req)

	if err := s.store.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}

	s.cache.Invalidate(ctx)
	return existing, nil
}

// ListByAdmin returns the courses owned by adminID.
func (s *CourseService) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Course, error) {
	courses, err := s.store.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("list admin courses: %w", err)
	}
	return courses, nil
}

// ListAll returns every course, served from the catalog cache when possible.
func (s *CourseService) ListAll(ctx context.Context) ([]model.Course, error) {
	courses, gen, ok := s.cache.Get(ctx)
	if ok {
		return courses, nil
	}

	courses, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	s.cache.Set(ctx, gen, courses)
	return courses, nil
}

func priceOf(req model.CourseRequest) int32 {
	if req.Price == nil {
		return 0
	}
	return *req.Price
}
