// Package auth resolves inspector credentials against the remote users
// table and manages the persisted local session.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
	"github.com/auditpack/auditpack/internal/repository"
	"github.com/auditpack/auditpack/internal/session"
	"github.com/auditpack/auditpack/internal/state"
)

type Service struct {
	users    repository.UserRepository
	sessions *session.Store
	syncer   *state.Syncer
	logger   *slog.Logger
}

func NewService(users repository.UserRepository, sessions *session.Store, syncer *state.Syncer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, sessions: sessions, syncer: syncer, logger: logger}
}

// Login checks the credentials against the remote users record, persists
// the session locally, and triggers the initial lists refresh. The remote
// store keeps passwords in plaintext; the check is a constant-time equality
// comparison.
func (s *Service) Login(ctx context.Context, email, password string) (entity.Session, error) {
	v := common.NewValidator()
	v.Field("email", email, common.Required)
	v.Field("password", password, common.Required)
	if err := v.Error(); err != nil {
		return entity.Session{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, stored, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return entity.Session{}, common.NewAppError("AUTH_FAILED", "invalid email or password", common.ErrUnauthorized)
		}
		return entity.Session{}, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		s.logger.Warn("auth.login.rejected", "email", email)
		return entity.Session{}, common.NewAppError("AUTH_FAILED", "invalid email or password", common.ErrUnauthorized)
	}

	sess := entity.Session{User: *user, IssuedAt: time.Now().UTC()}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return entity.Session{}, err
	}
	s.logger.Info("auth.login.ok", "inspector_id", user.ID, "email", email)

	// Initial population; a failed refresh does not undo the login.
	if _, err := s.syncer.Refresh(ctx); err != nil {
		s.logger.Warn("auth.login.refresh_failed", "error", err)
	}
	return sess, nil
}

// Resume loads the persisted session, if any. Called once at startup.
func (s *Service) Resume(ctx context.Context) (entity.Session, bool, error) {
	return s.sessions.Load(ctx)
}

// Logout clears the persisted session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("auth.logout.ok")
	return nil
}
