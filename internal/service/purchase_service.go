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

// ErrAlreadyPurchased is returned when the user already owns the course.
var ErrAlreadyPurchased = errors.New("course already purchased")

// PurchaseStore persists purchases. Create must reject a second row for the
// same (user, course) pair with repository.ErrDuplicatePurchase.
type PurchaseStore interface {
	Create(ctx context.Context, p *model.Purchase) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error)
}

// PurchaseService handles course purchases.
type PurchaseService struct {
	store PurchaseStore
	log   zerolog.Logger
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(store PurchaseStore, log zerolog.Logger) *PurchaseService {
	return &PurchaseService{
		store: store,
		log:   logger.Component(log, "purchase_service"),
	}
}

// Purchase records that userID bought courseID.
// The scan over existing purchases answers the common case; the store's
// uniqueness guarantee settles concurrent duplicates.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID uuid.UUID) (*model.Purchase, error) {
	existing, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	for _, p := range existing {
		if p.CourseID == courseID {
			return nil, ErrAlreadyPurchased
		}
	}

	purchase := &model.Purchase{UserID: userID, CourseID: courseID}
	if err := s.store.Create(ctx, purchase); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePurchase):
			return nil, ErrAlreadyPurchased
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("create purchase: %w", err)
	}

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Str("user_id", userID.String()).
		Str("course_id", courseID.String()).
		Msg("Course purchased")
	return purchase, nil
}

// ListByUser returns every purchase of userID.
func (s *PurchaseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	purchases, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}
