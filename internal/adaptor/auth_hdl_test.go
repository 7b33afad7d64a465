package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookie(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{resp: authResponse()}, true, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/_auth/login", strings.NewReader(`{"email":"sara@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := cookieByName(rec, utils.CustomerCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	// the token never appears in the body
	assert.NotContains(t, rec.Body.String(), "signed.jwt.token")
}

func TestAdminLoginSetsAdminCookie(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{resp: authResponse()}, false, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/_auth/adminLogin", strings.NewReader(`{"email":"admin@example.com","password":"x"}`))
	rec := httptest.NewRecorder()
	h.AdminLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, cookieByName(rec, utils.AdminCookie))
	assert.Nil(t, cookieByName(rec, utils.CustomerCookie))
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"malformed body", `{"email":`, nil, http.StatusBadRequest},
		{"missing password", `{"email":"sara@example.com"}`, nil, http.StatusBadRequest},
		{"wrong password", `{"email":"sara@example.com","password":"nope"}`, usecase.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthService{err: tt.err}, false, zap.NewNop())
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/_auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.code, rec.Code)
			assert.Nil(t, cookieByName(rec, utils.CustomerCookie))
		})
	}
}

func TestRegisterReturnsCreated(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{resp: authResponse()}, false, zap.NewNop())

	body := `{"name":"Sara","email":"sara@example.com","password":"secret123"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/_auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, cookieByName(rec, utils.CustomerCookie))
}

func TestLogoutClearsBothCookies(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, false, zap.NewNop())
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/_auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{utils.CustomerCookie, utils.AdminCookie} {
		c := cookieByName(rec, name)
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	}
}

func TestMe(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, false, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/_auth/me", nil)
	ctx := utils.SetPrincipal(context.Background(), utils.Principal{Kind: utils.PrincipalCustomer, UserID: 7, Name: "Sara"})
	rec := httptest.NewRecorder()
	h.Me(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"customer"`)
	assert.Contains(t, rec.Body.String(), `"userId":7`)

	rec = httptest.NewRecorder()
	h.Me(rec, req)
	assert.Contains(t, rec.Body.String(), `"kind":"anonymous"`)
}
