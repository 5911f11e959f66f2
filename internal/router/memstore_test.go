package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/repository"
)

// memDB is an in-memory stand-in for the Postgres schema, enforcing the same
// unique and foreign-key constraints the migrations declare.
type memDB struct {
	mu        sync.Mutex
	admins    map[string]model.Account
	users     map[string]model.Account
	courses   map[uuid.UUID]model.Course
	purchases []model.Purchase
	pingErr   error
}

func newMemDB() *memDB {
	return &memDB{
		admins:  make(map[string]model.Account),
		users:   make(map[string]model.Account),
		courses: make(map[uuid.UUID]model.Course),
	}
}

func (db *memDB) Ping(context.Context) error { return db.pingErr }

type memAccounts struct {
	db    *memDB
	table func(*memDB) map[string]model.Account
}

func (s memAccounts) Exists(_ context.Context, email string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.table(s.db)[email]
	return ok, nil
}

func (s memAccounts) Create(_ context.Context, a *model.Account) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t := s.table(s.db)
	if _, ok := t[a.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	t[a.Email] = *a
	return nil
}

func (s memAccounts) GetPasswordHash(_ context.Context, email string) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.table(s.db)[email]
	if !ok {
		return "", repository.ErrNotFound
	}
	return a.PasswordHash, nil
}

func (s memAccounts) GetIDByEmail(_ context.Context, email string) (uuid.UUID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.table(s.db)[email]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return a.ID, nil
}

type memCourses struct{ db *memDB }

func (s memCourses) Create(_ context.Context, c *model.Course) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.db.courses[c.ID] = *c
	return nil
}

func (s memCourses) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s memCourses) Update(_ context.Context, c *model.Course) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = c.Title
	existing.ImageURL = c.ImageURL
	existing.Price = c.Price
	existing.UpdatedAt = time.Now()
	s.db.courses[c.ID] = existing
	return nil
}

func (s memCourses) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Course, error) {
	return s.list(&adminID), nil
}

func (s memCourses) ListAll(context.Context) ([]model.Course, error) {
	return s.list(nil), nil
}

func (s memCourses) list(adminID *uuid.UUID) []model.Course {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []model.Course
	for _, c := range s.db.courses {
		if adminID == nil || c.AdminID == *adminID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type memPurchases struct{ db *memDB }

func (s memPurchases) Create(_ context.Context, p *model.Purchase) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.courses[p.CourseID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range s.db.purchases {
		if existing.UserID == p.UserID && existing.CourseID == p.CourseID {
			return repository.ErrDuplicatePurchase
		}
	}
	p.ID = uuid.New()
	s.db.purchases = append(s.db.purchases, *p)
	return nil
}

func (s memPurchases) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []model.Purchase
	for _, p := range s.db.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
