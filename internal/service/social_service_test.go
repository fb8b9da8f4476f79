package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

// MockFollowRepository is a mock implementation of FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, f *model.Follow) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]repository.FollowSummary, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.FollowSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]repository.FollowSummary, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.FollowSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSocialService_Follow(t *testing.T) {
	followerID := uuid.New()
	followeeID := uuid.New()

	t.Run("self follow is rejected", func(t *testing.T) {
		service := NewSocialService(new(MockUserRepository), new(MockFollowRepository), new(MockNotificationRepository))
		err := service.Follow(context.Background(), followerID, followerID)
		assert.Equal(t, ErrSelfFollow, err)
	})

	t.Run("missing followee", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, followeeID).Return(nil, gorm.ErrRecordNotFound)

		service := NewSocialService(mockUsers, new(MockFollowRepository), new(MockNotificationRepository))
		err := service.Follow(context.Background(), followerID, followeeID)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("duplicate edge maps to already following", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)
		mockUsers.On("FindByID", mock.Anything, followeeID).Return(&model.User{ID: followeeID}, nil)
		mockFollows.On("Create", mock.Anything, mock.AnythingOfType("*model.Follow")).Return(gorm.ErrDuplicatedKey)

		service := NewSocialService(mockUsers, mockFollows, new(MockNotificationRepository))
		err := service.Follow(context.Background(), followerID, followeeID)
		assert.Equal(t, ErrAlreadyFollowing, err)
	})

	t.Run("successful follow notifies the followee", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)
		mockNotifs := new(MockNotificationRepository)
		mockUsers.On("FindByID", mock.Anything, followeeID).Return(&model.User{ID: followeeID}, nil)
		mockUsers.On("FindByID", mock.Anything, followerID).Return(&model.User{ID: followerID, Username: "jonas"}, nil)
		mockFollows.On("Create", mock.Anything, mock.AnythingOfType("*model.Follow")).Return(nil)
		mockNotifs.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == followeeID && n.Type == "follow"
		})).Return(nil)

		service := NewSocialService(mockUsers, mockFollows, mockNotifs)
		err := service.Follow(context.Background(), followerID, followeeID)
		assert.NoError(t, err)

		mockFollows.AssertExpectations(t)
		mockNotifs.AssertExpectations(t)
	})
}

func TestSocialService_Unfollow(t *testing.T) {
	followerID := uuid.New()
	followeeID := uuid.New()

	t.Run("removes an existing edge", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockFollows.On("Delete", mock.Anything, followerID, followeeID).Return(int64(1), nil)

		service := NewSocialService(new(MockUserRepository), mockFollows, new(MockNotificationRepository))
		err := service.Unfollow(context.Background(), followerID, followeeID)
		assert.NoError(t, err)
	})

	t.Run("no edge to remove", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockFollows.On("Delete", mock.Anything, followerID, followeeID).Return(int64(0), nil)

		service := NewSocialService(new(MockUserRepository), mockFollows, new(MockNotificationRepository))
		err := service.Unfollow(context.Background(), followerID, followeeID)
		assert.Equal(t, ErrNotFollowing, err)
	})
}

func TestSocialService_MarkNotificationRead(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("owner can mark read", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepository)
		mockNotifs.On("FindByID", mock.Anything, uint(7)).Return(&model.Notification{ID: 7, UserID: ownerID}, nil)
		mockNotifs.On("MarkRead", mock.Anything, uint(7)).Return(nil)

		service := NewSocialService(new(MockUserRepository), new(MockFollowRepository), mockNotifs)
		err := service.MarkNotificationRead(context.Background(), ownerID, 7)
		assert.NoError(t, err)
		mockNotifs.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepository)
		mockNotifs.On("FindByID", mock.Anything, uint(7)).Return(&model.Notification{ID: 7, UserID: ownerID}, nil)

		service := NewSocialService(new(MockUserRepository), new(MockFollowRepository), mockNotifs)
		err := service.MarkNotificationRead(context.Background(), strangerID, 7)
		assert.Equal(t, apperrors.ErrForbidden, err)
		mockNotifs.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("missing notification", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepository)
		mockNotifs.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		service := NewSocialService(new(MockUserRepository), new(MockFollowRepository), mockNotifs)
		err := service.MarkNotificationRead(context.Background(), ownerID, 7)
		assert.Equal(t, apperrors.ErrNotificationNotFound, err)
	})
}
