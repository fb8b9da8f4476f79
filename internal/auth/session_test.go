package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestSession_EstablishAndCurrent(t *testing.T) {
	tokens := NewTokenService("test-secret")
	session := NewSession(tokens, false)

	user := testUser()
	token, err := tokens.GenerateSessionToken(user)
	assert.NoError(t, err)

	c, rec := newEchoContext()
	session.Establish(c, token)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(SessionTokenExpiry.Seconds()), cookie.MaxAge)

	// Replay the cookie on a fresh request.
	c2, _ := newEchoContext()
	c2.Request().AddCookie(&http.Cookie{Name: CookieName, Value: token})

	claims, err := session.Current(c2)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
}

func TestSession_CurrentWithoutCookie(t *testing.T) {
	session := NewSession(NewTokenService("test-secret"), false)

	c, _ := newEchoContext()
	_, err := session.Current(c)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestSession_Clear(t *testing.T) {
	session := NewSession(NewTokenService("test-secret"), false)

	c, rec := newEchoContext()
	session.Clear(c)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestSession_SecureFlagInProduction(t *testing.T) {
	tokens := NewTokenService("test-secret")
	session := NewSession(tokens, true)

	token, err := tokens.GenerateSessionToken(testUser())
	assert.NoError(t, err)

	c, rec := newEchoContext()
	session.Establish(c, token)

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
