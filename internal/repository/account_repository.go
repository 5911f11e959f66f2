package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/course-marketplace/internal/model"
)

// AccountRepository handles credential data access for one principal kind.
// Admins and users share the shape but never the table.
type AccountRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewAdminRepository creates an AccountRepository over the admins table.
func NewAdminRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool, table: "admins"}
}

// NewUserRepository creates an AccountRepository over the users table.
func NewUserRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool, table: "users"}
}

// Exists reports whether an account with the email is registered.
func (r *AccountRepository) Exists(ctx context.Context, email string) (bool, error) {
	query, args, err := existsByEmailQuery(r.table, email)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s exists: %w", r.table, err)
	}
	return exists, nil
}

// Create inserts a new account and fills in its generated id.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	query, args, err := psql.Insert(r.table).
		Columns("name", "email", "password_hash").
		Values(a.Name, a.Email, a.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// GetPasswordHash retrieves the stored password hash for the email.
func (r *AccountRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	var hash string
	if err := r.scanOneByEmail(ctx, "password_hash", email, &hash); err != nil {
		return "", err
	}
	return hash, nil
}

// GetIDByEmail resolves an email to the account id.
func (r *AccountRepository) GetIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := r.scanOneByEmail(ctx, "id", email, &id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *AccountRepository) scanOneByEmail(ctx context.Context, column, email string, dst any) error {
	query, args, err := psql.Select(column).
		From(r.table).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(dst); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select %s.%s: %w", r.table, column, err)
	}
	return nil
}

func existsByEmailQuery(table, email string) (string, []any, error) {
	return psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(sq.Eq{"email": email}).
		Suffix(")").
		ToSql()
}
