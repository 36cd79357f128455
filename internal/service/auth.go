package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

const (
	minPasswordLength = 6

	demoUsername = "demo"
	demoPassword = "demo"
	demoEmail    = "demo@learn-scripting.local"
)

// AuthOutcome tells how a login or registration ended.
type AuthOutcome struct {
	Session    entities.Session
	Demo       bool // the server was bypassed and a local demo session was created
	Registered bool // the server created the account; the learner still has to log in
}

type AuthService struct {
	api API
	log *zap.Logger
	now func() time.Time
}

func NewAuthService(api API, log *zap.Logger) *AuthService {
	return &AuthService{api: api, log: log, now: time.Now}
}

// Login signs in against the server. When that fails, demo/demo still opens a
// demo session and anything else returns ErrLoginFailed.
func (s *AuthService) Login(ctx context.Context, l *Learner, username, password string) (AuthOutcome, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return AuthOutcome{}, ErrMissingCredentials
	}

	res, err := s.api.Login(ctx, username, password)
	if err == nil && res.User != nil {
		session := entities.Session{
			ID:         res.User.ID,
			Username:   res.User.Username,
			Email:      res.User.Email,
			IsLoggedIn: true,
		}
		if err := l.setSession(ctx, session); err != nil {
			return AuthOutcome{}, fmt.Errorf("save session: %w", err)
		}
		return AuthOutcome{Session: session}, nil
	}

	s.log.Info("login rejected", zap.Int64("chat_id", l.ChatID), zap.Error(err))

	if username != demoUsername || password != demoPassword {
		return AuthOutcome{}, ErrLoginFailed
	}
	return s.demo(ctx, l, demoUsername, demoEmail)
}

// Register creates an account on the server. On success nothing changes
// locally and the learner is asked to log in. Any server failure, including
// success=false, degrades to a local demo session with the submitted name.
func (s *AuthService) Register(ctx context.Context, l *Learner, username, email, password, confirm string) (AuthOutcome, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" || confirm == "" {
		return AuthOutcome{}, ErrMissingFields
	}
	if password != confirm {
		return AuthOutcome{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return AuthOutcome{}, ErrPasswordTooShort
	}

	res, err := s.api.Register(ctx, username, email, password)
	if err == nil && res.Success {
		s.log.Info("account registered", zap.Int64("chat_id", l.ChatID))
		return AuthOutcome{Registered: true}, nil
	}

	s.log.Info("registration degraded to demo account", zap.Int64("chat_id", l.ChatID), zap.Error(err))
	return s.demo(ctx, l, username, email)
}

// Logout forgets the identity; progress is kept.
func (s *AuthService) Logout(ctx context.Context, l *Learner) error {
	if err := l.clearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) demo(ctx context.Context, l *Learner, username, email string) (AuthOutcome, error) {
	session := entities.Session{
		ID:         s.now().UnixMilli(),
		Username:   username,
		Email:      email,
		IsLoggedIn: true,
		Demo:       true,
	}
	if err := l.setSession(ctx, session); err != nil {
		return AuthOutcome{}, fmt.Errorf("save session: %w", err)
	}
	return AuthOutcome{Session: session, Demo: true}, nil
}
