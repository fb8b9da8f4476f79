package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"ktucyber/internal/model"
)

const (
	// SessionTokenExpiry is the duration for which session tokens are valid.
	SessionTokenExpiry = 2 * time.Hour
	// ActionTokenExpiry is the duration for which email-verification and
	// password-reset tokens are valid.
	ActionTokenExpiry = 1 * time.Hour
)

// ErrInvalidToken is returned for any token that fails validation:
// malformed, tampered, wrong algorithm, or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims is the claim set carried by a session token.
type SessionClaims struct {
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Role       model.Role `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	jwt.RegisteredClaims
}

// ActionClaims is the short claim set carried by verification and reset
// tokens. The JTI makes each token single-use via the token store.
type ActionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed tokens using one shared secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given secret.
// The secret must be validated by the caller before construction.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateSessionToken mints a session token for an authenticated user.
func (s *TokenService) GenerateSessionToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:     user.ID.String(),
		Email:      user.Email,
		Username:   user.Username,
		Role:       user.Role,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateActionToken mints a verification or reset token for the user.
// The token ID is returned separately for single-use tracking.
func (s *TokenService) GenerateActionToken(userID uuid.UUID, email string) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	now := time.Now()
	claims := &ActionClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ActionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return tokenID, token, err
}

// ValidateSessionToken validates a session token and returns its claims.
// An empty token string is a validation failure, not a panic.
func (s *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateActionToken validates a verification or reset token.
func (s *TokenService) ValidateActionToken(tokenString string) (*ActionClaims, error) {
	claims := &ActionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
