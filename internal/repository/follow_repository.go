package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ktucyber/internal/model"
)

// FollowSummary is the follower/following list entry shown on profiles.
type FollowSummary struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture"`
}

// FollowRepository defines follow-graph persistence operations.
type FollowRepository interface {
	Create(ctx context.Context, f *model.Follow) error
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error)
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]FollowSummary, int64, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]FollowSummary, int64, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, f *model.Follow) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]FollowSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followee_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var followers []FollowSummary
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Select("users.id, users.username, CONCAT(users.first_name, ' ', users.last_name) AS full_name, users.profile_picture").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Scan(&followers).Error; err != nil {
		return nil, 0, err
	}
	return followers, total, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]FollowSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var following []FollowSummary
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Select("users.id, users.username, CONCAT(users.first_name, ' ', users.last_name) AS full_name, users.profile_picture").
		Joins("JOIN users ON users.id = follows.followee_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Scan(&following).Error; err != nil {
		return nil, 0, err
	}
	return following, total, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
