package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehablog_backend/internal/app/web"
	"rehablog_backend/internal/feature/auth/domain/entity"
	"rehablog_backend/internal/feature/auth/usecase"
	"rehablog_backend/internal/platform/token"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error)
	LoginFunc    func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error)
	LogoutFunc   func(ctx context.Context, sessionID string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password, client)
	}
	return nil, errors.New("register failed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password, client)
	}
	return nil, errors.New("login failed")
}

func (m *mockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

var testTokens = token.NewManager("test-secret", time.Hour)

func testSession(id string, userID uint) *entity.Session {
	now := time.Now()
	return &entity.Session{ID: id, UserID: userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

// newTestRouter wires an AuthHandler into a fresh engine.
func newTestRouter(auth AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	h := NewAuthHandler(auth, testTokens, CookieConfig{MaxAge: 3600})
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the session cookie from a response, or nil.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == token.SessionCookie {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success: auto-login and redirect", func(t *testing.T) {
		auth := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
				assert.Equal(t, "alice", username)
				assert.Equal(t, "pw1", password)
				return testSession("session-1", 1), nil
			},
		}
		r := newTestRouter(auth)

		w := postForm(r, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookie := sessionCookie(w)
		require.NotNil(t, cookie, "registration must establish a session cookie")
		assert.True(t, cookie.HttpOnly)

		// The cookie must reference the new session
		sessionID, err := testTokens.Parse(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("failure: duplicate username", func(t *testing.T) {
		auth := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
				return nil, usecase.ErrUsernameTaken
			},
		}
		r := newTestRouter(auth)

		w := postForm(r, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "username already taken")
		assert.Nil(t, sessionCookie(w), "no session on failed registration")
	})

	t.Run("failure: missing fields", func(t *testing.T) {
		auth := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
				return nil, usecase.ErrMissingCredentials
			},
		}
		r := newTestRouter(auth)

		w := postForm(r, "/register", url.Values{"username": {""}, "password": {""}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success: session cookie and redirect", func(t *testing.T) {
		auth := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
				return testSession("session-2", 1), nil
			},
		}
		r := newTestRouter(auth)

		w := postForm(r, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		sessionID, err := testTokens.Parse(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "session-2", sessionID)
	})

	t.Run("failure: invalid credentials use one generic message", func(t *testing.T) {
		auth := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, username, password string, client usecase.ClientInfo) (*entity.Session, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}
		r := newTestRouter(auth)

		// Wrong password for an existing user and a nonexistent user must
		// produce byte-identical responses.
		w1 := postForm(r, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
		w2 := postForm(r, "/login", url.Values{"username": {"nobody"}, "password": {"pw1"}})

		assert.Equal(t, http.StatusUnauthorized, w1.Code)
		assert.Equal(t, http.StatusUnauthorized, w2.Code)
		assert.Contains(t, w1.Body.String(), invalidCredentialsMessage)
		assert.Equal(t, w1.Body.String(), w2.Body.String())
		assert.Nil(t, sessionCookie(w1), "no session on failed login")
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the session and clears the cookie", func(t *testing.T) {
		revoked := ""
		auth := &mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, sessionID string) error {
				revoked = sessionID
				return nil
			},
		}
		r := newTestRouter(auth)

		signed, err := testTokens.Issue("session-3")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: token.SessionCookie, Value: signed})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, token.LoginPath, w.Header().Get("Location"))
		assert.Equal(t, "session-3", revoked)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value, "cookie must be cleared")
		assert.Negative(t, cookie.MaxAge)
	})

	t.Run("logout without a cookie still redirects", func(t *testing.T) {
		logoutCalled := false
		auth := &mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, sessionID string) error {
				logoutCalled = true
				return nil
			},
		}
		r := newTestRouter(auth)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, token.LoginPath, w.Header().Get("Location"))
		assert.False(t, logoutCalled, "nothing to revoke without a cookie")
	})
}

func TestAuthHandler_ShowForms(t *testing.T) {
	r := newTestRouter(&mockAuthUsecase{})

	for _, path := range []string{"/login", "/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	}
}
