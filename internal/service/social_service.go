package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following this user")
	// ErrNotFollowing is returned when unfollowing without an edge.
	ErrNotFollowing = errors.New("not following this user")
)

// FollowPage is one page of follower/following summaries.
type FollowPage struct {
	Users      []repository.FollowSummary `json:"users"`
	TotalCount int64                      `json:"total_count"`
}

// NotificationPage is one page of notifications.
type NotificationPage struct {
	Notifications []model.Notification `json:"notifications"`
	TotalCount    int64                `json:"total_count"`
}

// SocialService handles the follow graph and the notification feed.
type SocialService interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID, page, pageSize int) (*FollowPage, error)
	Following(ctx context.Context, userID uuid.UUID, page, pageSize int) (*FollowPage, error)
	Notifications(ctx context.Context, userID uuid.UUID, page, pageSize int) (*NotificationPage, error)
	MarkNotificationRead(ctx context.Context, callerID uuid.UUID, notificationID uint) error
}

type socialService struct {
	userRepo  repository.UserRepository
	follows   repository.FollowRepository
	notifRepo repository.NotificationRepository
}

// NewSocialService creates a new social service.
func NewSocialService(
	userRepo repository.UserRepository,
	follows repository.FollowRepository,
	notifRepo repository.NotificationRepository,
) SocialService {
	return &socialService{
		userRepo:  userRepo,
		follows:   follows,
		notifRepo: notifRepo,
	}
}

// Follow creates a follow edge and notifies the followee.
func (s *socialService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	followee, err := s.userRepo.FindByID(ctx, followeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find followee: %w", err)
	}

	err = s.follows.Create(ctx, &model.Follow{FollowerID: followerID, FolloweeID: followeeID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("create follow: %w", err)
	}

	follower, err := s.userRepo.FindByID(ctx, followerID)
	if err != nil {
		return nil // edge created; notification is best effort
	}
	notif := &model.Notification{
		UserID:  followee.ID,
		Type:    "follow",
		Message: fmt.Sprintf("%s started following you", follower.Username),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("create follow notification: %v", err)
	}
	return nil
}

// Unfollow removes the follow edge.
func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	affected, err := s.follows.Delete(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if affected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers pages through the user's followers.
func (s *socialService) Followers(ctx context.Context, userID uuid.UUID, page, pageSize int) (*FollowPage, error) {
	users, total, err := s.follows.ListFollowers(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return &FollowPage{Users: users, TotalCount: total}, nil
}

// Following pages through the users this user follows.
func (s *socialService) Following(ctx context.Context, userID uuid.UUID, page, pageSize int) (*FollowPage, error) {
	users, total, err := s.follows.ListFollowing(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return &FollowPage{Users: users, TotalCount: total}, nil
}

// Notifications pages through the caller's notification feed.
func (s *socialService) Notifications(ctx context.Context, userID uuid.UUID, page, pageSize int) (*NotificationPage, error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &NotificationPage{Notifications: notifications, TotalCount: total}, nil
}

// MarkNotificationRead marks a notification read. The caller must own it.
func (s *socialService) MarkNotificationRead(ctx context.Context, callerID uuid.UUID, notificationID uint) error {
	notif, err := s.notifRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("find notification: %w", err)
	}
	if notif.UserID != callerID {
		return apperrors.ErrForbidden
	}
	return s.notifRepo.MarkRead(ctx, notificationID)
}
