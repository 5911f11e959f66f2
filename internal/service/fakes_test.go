package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var testLog = zerolog.New(io.Discard)

func testConfig() *config.Config {
	return &config.Config{
		AdminJWTSecret: "admin-secret-for-tests",
		UserJWTSecret:  "user-secret-for-tests",
		JWTExpiry:      24 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
	}
}

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	err      error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]model.Account)}
}

func (s *fakeAccountStore) Exists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.accounts[email]
	return ok, nil
}

func (s *fakeAccountStore) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	s.accounts[a.Email] = *a
	return nil
}

func (s *fakeAccountStore) GetPasswordHash(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return "", repository.ErrNotFound
	}
	return a.PasswordHash, nil
}

func (s *fakeAccountStore) GetIDByEmail(_ context.Context, email string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return a.ID, nil
}

type fakeCourseStore struct {
	mu      sync.Mutex
	courses []model.Course
	listAll int
}

func (s *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.courses = append(s.courses, *c)
	return nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			c := s.courses[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCourseStore) Update(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == c.ID {
			s.courses[i].Title = c.Title
			s.courses[i].ImageURL = c.ImageURL
			s.courses[i].Price = c.Price
			s.courses[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeCourseStore) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Course
	for _, c := range s.courses {
		if c.AdminID == adminID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) ListAll(_ context.Context) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listAll++
	return append([]model.Course(nil), s.courses...), nil
}

type fakePurchaseStore struct {
	mu        sync.Mutex
	purchases []model.Purchase
	// hideFromList simulates a concurrent insert the scan did not see.
	hideFromList bool
	courses      map[uuid.UUID]bool
}

func (s *fakePurchaseStore) Create(_ context.Context, p *model.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courses != nil && !s.courses[p.CourseID] {
		return repository.ErrNotFound
	}
	for _, existing := range s.purchases {
		if existing.UserID == p.UserID && existing.CourseID == p.CourseID {
			return repository.ErrDuplicatePurchase
		}
	}
	p.ID = uuid.New()
	s.purchases = append(s.purchases, *p)
	return nil
}

func (s *fakePurchaseStore) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hideFromList {
		return nil, nil
	}
	var out []model.Purchase
	for _, p := range s.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
