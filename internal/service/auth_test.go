package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/gateway"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

func TestAuthService_Login(t *testing.T) {
	okLogin := func(username, _ string) (gateway.AuthResult, error) {
		return gateway.AuthResult{User: &gateway.User{ID: 9, Username: username, Email: "ann@example.com"}}, nil
	}

	tests := []struct {
		name     string
		api      *stubAPI
		username string
		password string
		wantErr  error
		wantDemo bool
		wantID   int64
	}{
		{name: "server accepts", api: &stubAPI{login: okLogin}, username: "ann", password: "secret", wantID: 9},
		{name: "offline demo", api: &stubAPI{}, username: "demo", password: "demo", wantDemo: true, wantID: 1700000000000},
		{name: "offline other user", api: &stubAPI{}, username: "ann", password: "secret", wantErr: ErrLoginFailed},
		{name: "missing password", api: &stubAPI{}, username: "ann", password: " ", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			l := newTestLearner(t, store)
			s := NewAuthService(tt.api, zap.NewNop())
			s.now = func() time.Time { return time.UnixMilli(1700000000000) }

			got, err := s.Login(context.Background(), l, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if l.Session().IsLoggedIn {
					t.Error("failed login changed the session")
				}
				if errors.Is(tt.wantErr, ErrValidation) && tt.api.calls.Load() != 0 {
					t.Error("validation error reached the network")
				}
				return
			}

			if got.Demo != tt.wantDemo || got.Session.ID != tt.wantID || !got.Session.IsLoggedIn {
				t.Errorf("outcome = %+v", got)
			}
			if l.Session() != got.Session {
				t.Errorf("learner session = %+v", l.Session())
			}
			if v, _ := store.Get(context.Background(), "learner:42:isLoggedIn"); string(v) != "true" {
				t.Errorf("isLoggedIn = %q", v)
			}
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name                               string
		username, email, password, confirm string
		want                               error
	}{
		{name: "missing email", username: "ann", password: "secret1", confirm: "secret1", want: ErrMissingFields},
		{name: "mismatch", username: "ann", email: "a@b.c", password: "secret1", confirm: "secret2", want: ErrPasswordMismatch},
		{name: "too short", username: "ann", email: "a@b.c", password: "12345", confirm: "12345", want: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{}
			s := NewAuthService(api, zap.NewNop())

			_, err := s.Register(context.Background(), newTestLearner(t, storage.NewMemoryStore()), tt.username, tt.email, tt.password, tt.confirm)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if api.calls.Load() != 0 {
				t.Error("validation error reached the network")
			}
		})
	}
}

func TestAuthService_RegisterDegradesToDemo(t *testing.T) {
	tests := []struct {
		name string
		api  *stubAPI
	}{
		{name: "offline", api: &stubAPI{}},
		{name: "rejected", api: &stubAPI{register: func(string, string, string) (gateway.AuthResult, error) {
			return gateway.AuthResult{Success: false, Error: "taken"}, nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLearner(t, storage.NewMemoryStore())
			s := NewAuthService(tt.api, zap.NewNop())
			s.now = func() time.Time { return time.UnixMilli(1712345678901) }

			got, err := s.Register(context.Background(), l, "ann", "ann@example.com", "secret1", "secret1")
			if err != nil {
				t.Fatalf("register: %v", err)
			}

			want := entities.Session{ID: 1712345678901, Username: "ann", Email: "ann@example.com", IsLoggedIn: true, Demo: true}
			if !got.Demo || got.Session != want {
				t.Errorf("session = %+v, want %+v", got.Session, want)
			}
		})
	}
}

func TestAuthService_RegisterSuccessRequiresLogin(t *testing.T) {
	l := newTestLearner(t, storage.NewMemoryStore())
	api := &stubAPI{register: func(string, string, string) (gateway.AuthResult, error) {
		return gateway.AuthResult{Success: true}, nil
	}}
	s := NewAuthService(api, zap.NewNop())

	got, err := s.Register(context.Background(), l, "ann", "ann@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !got.Registered || got.Demo {
		t.Errorf("outcome = %+v", got)
	}
	if l.Session().IsLoggedIn {
		t.Errorf("registration logged in: %+v", l.Session())
	}
}

// Bodies are shaped like the course server's: login answers {user}, register answers {success}.
func TestAuthService_ServerResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			_, _ = w.Write([]byte(`{"user":{"id":7,"username":"ann","email":"ann@example.com"}}`))
		case "/api/register":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	s := NewAuthService(gateway.New(srv.URL, zap.NewNop()), zap.NewNop())

	reg, err := s.Register(ctx, newTestLearner(t, storage.NewMemoryStore()), "ann", "ann@example.com", "secret1", "secret1")
	if err != nil || !reg.Registered || reg.Demo {
		t.Fatalf("register: outcome = %+v, err = %v", reg, err)
	}

	l := newTestLearner(t, storage.NewMemoryStore())
	got, err := s.Login(ctx, l, "ann", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	want := entities.Session{ID: 7, Username: "ann", Email: "ann@example.com", IsLoggedIn: true}
	if got.Demo || l.Session() != want {
		t.Errorf("session = %+v, want %+v", l.Session(), want)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	l := newTestLearner(t, store)
	s := NewAuthService(&stubAPI{}, zap.NewNop())

	if _, err := s.Login(ctx, l, "demo", "demo"); err != nil {
		t.Fatalf("login: %v", err)
	}
	_, _ = l.Progress.MarkLessonComplete(ctx, entities.SubjectPython, 1)

	if err := s.Logout(ctx, l); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if l.Session() != entities.Anonymous() {
		t.Errorf("session = %+v", l.Session())
	}
	if _, err := store.Get(ctx, "learner:42:username"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("username still stored: %v", err)
	}
	if !l.Progress.Get(entities.SubjectPython).HasLesson(1) {
		t.Error("logout dropped progress")
	}
}
