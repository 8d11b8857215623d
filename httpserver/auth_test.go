package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"moviecatalog/auth"
	"moviecatalog/httpserver"
	"moviecatalog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthServer() (*httpserver.Server, *MockAuthService) {
	server := httpserver.Default(testConfig())
	svc := new(MockAuthService)
	server.AuthService = svc
	return server, svc
}

func TestRegister(t *testing.T) {
	t.Run("should return 204 on success", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("Register", mock.Anything, "jane@mail.com", "s3cret-pass").Return(user.User{ID: 1}, nil).Once()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/register", credentials("jane@mail.com", "s3cret-pass")))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should return 409 when email is taken", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("Register", mock.Anything, "jane@mail.com", "s3cret-pass").Return(user.User{}, user.ErrEmailAlreadyExists).Once()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/register", credentials("jane@mail.com", "s3cret-pass")))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "100409", decodeAPIResponse(t, rec).Code)
	})

	t.Run("should return 400 for an invalid email", func(t *testing.T) {
		server, svc := newAuthServer()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/register", credentials("not-an-email", "s3cret-pass")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return 400 for a short password", func(t *testing.T) {
		server, svc := newAuthServer()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/register", credentials("jane@mail.com", "short")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestLogin(t *testing.T) {
	t.Run("should return tokens and the admin flag", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("Login", mock.Anything, "admin@mail.com", "s3cret-pass").
			Return(auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", IsAdmin: true}, nil).Once()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/login", credentials("admin@mail.com", "s3cret-pass")))

		require.Equal(t, http.StatusOK, rec.Code)
		var result httpserver.LoginResponse
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &result)
		assert.Equal(t, httpserver.LoginResponse{Access: "access", Refresh: "refresh", IsAdmin: true}, result)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"wrong password", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked account", auth.ErrAccountLocked, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run("should map "+tt.name, func(t *testing.T) {
			server, svc := newAuthServer()
			svc.On("Login", mock.Anything, "jane@mail.com", "wrong-pass").Return(auth.TokenPair{}, tt.err).Once()

			rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/login", credentials("jane@mail.com", "wrong-pass")))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "access")
		})
	}
}

func TestRefresh(t *testing.T) {
	t.Run("should return a new pair", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("Refresh", mock.Anything, "old-refresh").Return(auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).Once()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{"refresh": "old-refresh"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		var result httpserver.RefreshResponse
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &result)
		assert.Equal(t, httpserver.RefreshResponse{Access: "a2", Refresh: "r2"}, result)
	})

	t.Run("should return 401 for an invalid token", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("Refresh", mock.Anything, "bad").Return(auth.TokenPair{}, auth.ErrInvalidRefreshToken).Once()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{"refresh": "bad"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should return 400 without a token", func(t *testing.T) {
		server, svc := newAuthServer()

		rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	})
}

func TestGoogleLogin(t *testing.T) {
	t.Run("should set the state cookie", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("GoogleAuthURL", mock.AnythingOfType("string")).Return("https://accounts.example/auth", nil).Once()

		rec := serve(server.Router, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://accounts.example/auth")
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "oauth_state=")
	})

	t.Run("should return 501 when not configured", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("GoogleAuthURL", mock.AnythingOfType("string")).Return("", auth.ErrOAuthNotConfigured).Once()

		rec := serve(server.Router, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}

func TestGoogleCallback(t *testing.T) {
	t.Run("should reject a state mismatch", func(t *testing.T) {
		server, svc := newAuthServer()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "s2"})

		rec := serve(server.Router, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "LoginWithGoogle", mock.Anything, mock.Anything)
	})

	t.Run("should return 400 without a code", func(t *testing.T) {
		server, _ := newAuthServer()

		rec := serve(server.Router, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=s1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should issue tokens", func(t *testing.T) {
		server, svc := newAuthServer()
		svc.On("LoginWithGoogle", mock.Anything, "c").Return(auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "s1"})

		rec := serve(server.Router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"access":"a"`)
		svc.AssertExpectations(t)
	})
}
