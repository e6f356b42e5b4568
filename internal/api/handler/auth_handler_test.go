package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/core/domain"
)

type stubAuthService struct {
	registerFn    func(ctx context.Context, username, password, role string) (*domain.User, error)
	loginFn       func(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error)
	issueAccessFn func(user *domain.User) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) IssueAccess(user *domain.User) (string, error) {
	return s.issueAccessFn(user)
}

type stubSessionService struct {
	resolveAccessFn  func(ctx context.Context, token string) (*domain.User, error)
	resolveRefreshFn func(ctx context.Context, token string) (*domain.User, string, error)
}

func (s *stubSessionService) ResolveAccess(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveAccessFn(ctx, token)
}

func (s *stubSessionService) ResolveRefresh(ctx context.Context, token string) (*domain.User, string, error) {
	return s.resolveRefreshFn(ctx, token)
}

func (s *stubSessionService) RequireActive(user *domain.User) error {
	if user.Disabled {
		return domain.ErrInactiveAccount
	}
	return nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, username, password, role string) (*domain.User, error) {
			if username != "alice" || role != domain.RoleUser {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{Username: username, Role: role}, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"secret-pw","role":"user"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != domain.RoleUser {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"short","role":"user"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_UnknownRole(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"secret-pw","role":"superuser"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","password":"secret-pw","role":"user"}`)

	if err := h.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*domain.TokenPair, *domain.User, error) {
			if username != "alice" || password != "correct-pw" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
				&domain.User{Username: "alice", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"correct-pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "acc" || resp["refresh_token"] != "ref" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*domain.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"bad"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*domain.TokenPair, *domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", "{")

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	session := &stubSessionService{
		resolveRefreshFn: func(_ context.Context, token string) (*domain.User, string, error) {
			if token != "live-refresh" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &domain.User{Username: "alice", Role: domain.RoleUser}, token, nil
		},
	}
	auth := &stubAuthService{
		issueAccessFn: func(user *domain.User) (string, error) {
			if user.Username != "alice" {
				t.Fatalf("unexpected user: %+v", user)
			}
			return "fresh-access", nil
		},
	}
	h := NewAuthHandler(auth, session)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer live-refresh")

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "fresh-access" || resp["refresh_token"] != "live-refresh" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh_MissingHeader(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubSessionService{
		resolveRefreshFn: func(_ context.Context, _ string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh", "")

	err := h.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Refresh_Rejected(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubSessionService{
		resolveRefreshFn: func(_ context.Context, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrUnauthenticated
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer dead-refresh")

	if err := h.Refresh(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated to propagate, got %v", err)
	}
}
