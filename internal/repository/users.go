package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
)

// UserRepository looks up inspector credentials in the remote users table.
// The stored password comes back verbatim; the remote store keeps it in
// plaintext and authentication is an equality check (see auth.Service).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, string /*password*/, error)
}

type userRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *slog.Logger) UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &userRepository{pool: pool, logger: logger}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		u        entity.User
		password string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password, created_at FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", common.NewAppError("USER_NOT_FOUND", "no account for "+email, common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to look up user", "email", email, "error", err)
		return nil, "", common.TransportError("query users", err)
	}
	return &u, password, nil
}
