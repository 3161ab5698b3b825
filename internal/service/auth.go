package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/logging"
	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/mykafka"
	"github.com/Skotchmaster/shop_demo/internal/repo"
	"github.com/Skotchmaster/shop_demo/pkg/tokens"
)

type AuthService struct {
	Users    UserRepository
	Sessions SessionRepository
	Events   Publisher

	Secret []byte
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type LoginResult struct {
	Token     string
	SessionID string
	UserID    uint
	ExpiresAt time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		l.Warn("login_failed", "reason", "missing credentials")
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	expiresAt := s.now().Add(s.TTL)
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: expiresAt.Unix(),
	}
	if err := s.Sessions.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	token, err := tokens.SignSession(s.Secret, session.ID, user.ID, expiresAt)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, userKey(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})
	return &LoginResult{
		Token:     token,
		SessionID: session.ID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session. Unknown or already revoked sessions are fine.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if sess.Revoked {
		return nil
	}
	if err := s.Sessions.RevokeSession(ctx, sessionID); err != nil {
		return err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, userKey(sess.UserID), map[string]any{
		"type":   "user_logged_out",
		"userID": sess.UserID,
	})
	return nil
}

// Authenticate resolves a live session to its user id.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (uint, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("missing session: %w", ErrUnauthorized)
	}

	sess, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("unknown session: %w", ErrUnauthorized)
		}
		return 0, err
	}
	if sess.Revoked {
		return 0, fmt.Errorf("session revoked: %w", ErrUnauthorized)
	}
	if s.now().Unix() >= sess.ExpiresAt {
		return 0, fmt.Errorf("session expired: %w", ErrUnauthorized)
	}
	return sess.UserID, nil
}

// PurgeExpiredSessions drops sessions that can no longer authenticate.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.Sessions.DeleteExpiredSessions(ctx, s.now().Unix())
}

// CreateUser seeds an account. Passwords are stored as given.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	user := models.User{Username: username, Password: password}
	if err := s.Users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("username %q: %w", username, ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}
