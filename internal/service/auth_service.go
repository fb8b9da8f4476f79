package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ktucyber/internal/auth"
	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/mail"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

const bcryptCost = 10

var (
	// ErrUserAlreadyExists is returned when the email or username is taken.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrTokenAlreadyUsed is returned when a single-use token is replayed.
	ErrTokenAlreadyUsed = errors.New("token has already been used")
)

// SignupInput carries validated signup form data.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

// SignupResult is what a successful signup hands back to the handler:
// the created user, a session token to establish, and the verification
// link mailed to the user.
type SignupResult struct {
	User             *model.User
	SessionToken     string
	VerificationLink string
}

// AuthService implements the signup, login, verification and password
// reset flows.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	Login(ctx context.Context, identifier, password string) (sessionToken string, user *model.User, err error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Mailer
	baseURL    string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	baseURL string,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		tokenStore: tokenStore,
		mailer:     mailer,
		baseURL:    baseURL,
	}
}

// Signup creates a user, mints a verification token, and returns a session
// token so the user is logged in before verifying email. Uniqueness rests
// on the database constraint; the pre-check only improves the error message
// in the common case.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	taken, err := s.userRepo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	}

	_, verificationToken, err := s.tokens.GenerateActionToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}
	user.VerificationToken = verificationToken

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent signups can both pass the pre-check; the constraint
		// is the source of truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	sessionToken, err := s.tokens.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	link := fmt.Sprintf("%s/userVerify?token=%s", s.baseURL, verificationToken)
	if s.mailer != nil {
		if err := s.mailer.SendVerification(user.Email, link); err != nil {
			log.Printf("send verification email to %s: %v", user.Email, err)
		}
	}

	return &SignupResult{
		User:             user,
		SessionToken:     sessionToken,
		VerificationLink: link,
	}, nil
}

// Login authenticates by email or username and returns a session token.
// Not-found and wrong-password are distinct failures.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidPassword
	}

	sessionToken, err := s.tokens.GenerateSessionToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	return sessionToken, user, nil
}

// VerifyEmail validates the token, re-derives the user by (id, email) as a
// second integrity check beyond the signature, and marks the user verified.
// The token ID is spent on first success so a captured token cannot be
// replayed. Re-running the flow for an already verified user still succeeds.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateActionToken(token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	used, err := s.tokenStore.IsUsed(ctx, claims.ID)
	if err == nil && used {
		return ErrTokenAlreadyUsed
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return auth.ErrInvalidToken
	}
	user, err := s.userRepo.FindByIDAndEmail(ctx, userID, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !user.IsVerified {
		if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
			return fmt.Errorf("mark verified: %w", err)
		}
	}

	if ok, err := s.tokenStore.MarkUsed(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err == nil && !ok {
		return ErrTokenAlreadyUsed
	}
	return nil
}

// RequestPasswordReset mints a reset token, persists it on the row, and
// mails the reset link.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	_, resetToken, err := s.tokens.GenerateActionToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, resetToken); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, resetToken)
	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(user.Email, link); err != nil {
			log.Printf("send password reset email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// ResetPassword checks the confirmation before any token work, then
// validates the token, re-derives the user, and stores the new hash.
// The token ID is spent on success.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	claims, err := s.tokens.ValidateActionToken(token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	used, err := s.tokenStore.IsUsed(ctx, claims.ID)
	if err == nil && used {
		return ErrTokenAlreadyUsed
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return auth.ErrInvalidToken
	}
	user, err := s.userRepo.FindByIDAndEmail(ctx, userID, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if ok, err := s.tokenStore.MarkUsed(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err == nil && !ok {
		return ErrTokenAlreadyUsed
	}
	return nil
}
