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

// Account errors.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotRegistered  = errors.New("email not registered")
	ErrAccountGone    = errors.New("authenticated account no longer exists")
)

// AccountStore is the credential store for one principal kind.
type AccountStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, a *model.Account) error
	GetPasswordHash(ctx context.Context, email string) (string, error)
	GetIDByEmail(ctx context.Context, email string) (uuid.UUID, error)
}

// AccountService implements signup, signin and id resolution for one principal kind.
// Admin and user flows are structurally identical and differ only in store and token secret.
type AccountService struct {
	kind  model.PrincipalKind
	store AccountStore
	auth  *AuthService
	log   zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(kind model.PrincipalKind, store AccountStore, auth *AuthService, log zerolog.Logger) *AccountService {
	return &AccountService{
		kind:  kind,
		store: store,
		auth:  auth,
		log:   logger.Component(log, string(kind)+"_account_service"),
	}
}

// Kind returns the principal kind this service manages.
func (s *AccountService) Kind() model.PrincipalKind {
	return s.kind
}

// Signup registers a new account and returns its id.
func (s *AccountService) Signup(ctx context.Context, req model.SignupRequest) (uuid.UUID, error) {
	exists, err := s.store.Exists(ctx, req.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return uuid.Nil, ErrDuplicateEmail
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, account); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return uuid.Nil, ErrDuplicateEmail
		}
		return uuid.Nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info().Str("account_id", account.ID.String()).Msg("Account registered")
	return account.ID, nil
}

// Signin verifies the credentials and returns a signed token for the email.
func (s *AccountService) Signin(ctx context.Context, req model.SigninRequest) (string, error) {
	exists, err := s.store.Exists(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if !exists {
		return "", ErrNotRegistered
	}

	// A deletion between the two round-trips surfaces as a plain retrieval failure.
	hash, err := s.store.GetPasswordHash(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}

	if err := s.auth.CheckPassword(hash, req.Password); err != nil {
		return "", err
	}

	return s.auth.GenerateToken(s.kind, req.Email)
}

// ResolveID maps the authenticated email to the account id.
func (s *AccountService) ResolveID(ctx context.Context, email string) (uuid.UUID, error) {
	id, err := s.store.GetIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, ErrAccountGone
		}
		return uuid.Nil, fmt.Errorf("resolve account id: %w", err)
	}
	return id, nil
}
