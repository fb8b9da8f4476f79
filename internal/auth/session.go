package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "auth_token"

// Session binds the token service to an HTTP-only cookie so the current
// caller can be derived from a request without presenting a token explicitly.
type Session struct {
	tokens *TokenService
	secure bool
}

// NewSession creates a session boundary. secure marks the cookie Secure,
// which should be on in production.
func NewSession(tokens *TokenService, secure bool) *Session {
	return &Session{tokens: tokens, secure: secure}
}

// Establish sets the session cookie on the response. The cookie max-age
// matches the token expiry so an expired token never lingers client-side.
func (s *Session) Establish(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Current reads the session cookie and returns the verified claims.
// A missing or invalid cookie yields ErrInvalidToken.
func (s *Session) Current(c echo.Context) (*SessionClaims, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrInvalidToken
	}
	return s.tokens.ValidateSessionToken(cookie.Value)
}

// Clear overwrites the session cookie, invalidating the client-held session
// immediately. The token itself stays valid until natural expiry.
func (s *Session) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
