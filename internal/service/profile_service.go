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
	"ktucyber/internal/storage"
)

// Profile is the aggregate view of a user shown on profile pages.
type Profile struct {
	UserID                   uuid.UUID      `json:"user_id"`
	Username                 string         `json:"username"`
	FullName                 string         `json:"full_name"`
	Email                    string         `json:"email"`
	ProfilePicture           string         `json:"profile_picture"`
	DateOfJoining            string         `json:"date_of_joining"`
	Settings                 model.Settings `json:"settings"`
	TotalFollowers           int64          `json:"total_followers"`
	TotalFollowing           int64          `json:"total_following"`
	TotalUploadedDocuments   int64          `json:"total_uploaded_documents"`
	TotalDownloadedDocuments int64          `json:"total_downloaded_documents"`
}

// DocumentPage is one page of documents plus the unpaged total.
type DocumentPage struct {
	Documents  []model.Document `json:"documents"`
	TotalCount int64            `json:"total_count"`
}

// ProfileService handles profile reads, settings updates, profile pictures,
// document listings and account deletion.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetPublicProfile(ctx context.Context, username string) (*Profile, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) error
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, filename string, data []byte, contentType string) (url string, err error)
	UploadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error)
	PublicDocuments(ctx context.Context, username string, page, pageSize int) (*DocumentPage, error)
	DownloadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error)
	BookmarkedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type profileService struct {
	userRepo   repository.UserRepository
	docRepo    repository.DocumentRepository
	followRepo repository.FollowRepository
	engageRepo repository.EngagementRepository
	store      storage.ObjectStore
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	followRepo repository.FollowRepository,
	engageRepo repository.EngagementRepository,
	store storage.ObjectStore,
) ProfileService {
	return &profileService{
		userRepo:   userRepo,
		docRepo:    docRepo,
		followRepo: followRepo,
		engageRepo: engageRepo,
		store:      store,
	}
}

// GetProfile builds the aggregate profile for the given user.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.buildProfile(ctx, user)
}

// GetPublicProfile builds the aggregate profile looked up by username.
func (s *profileService) GetPublicProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.buildProfile(ctx, user)
}

func (s *profileService) buildProfile(ctx context.Context, user *model.User) (*Profile, error) {
	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	_, uploaded, err := s.docRepo.ListByUser(ctx, user.ID, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}
	downloaded, err := s.engageRepo.CountDownloadsByUploader(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count downloads: %w", err)
	}

	return &Profile{
		UserID:                   user.ID,
		Username:                 user.Username,
		FullName:                 user.FullName(),
		Email:                    user.Email,
		ProfilePicture:           user.ProfilePicture,
		DateOfJoining:            user.CreatedAt.Format("2006-01-02"),
		Settings:                 user.Settings,
		TotalFollowers:           followers,
		TotalFollowing:           following,
		TotalUploadedDocuments:   uploaded,
		TotalDownloadedDocuments: downloaded,
	}, nil
}

// UpdateSettings replaces the caller's settings blob.
func (s *profileService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return s.userRepo.UpdateSettings(ctx, userID, settings)
}

// UploadProfilePicture stores a new picture and deletes the previous one.
func (s *profileService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	key := storage.ProfilePictureKey(userID, filename)
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}

	if user.ProfilePicture != "" {
		if old := storageKeyFromURL(user.ProfilePicture, s.store); old != "" {
			if err := s.store.Delete(ctx, old); err != nil {
				log.Printf("delete old profile picture %s: %v", old, err)
			}
		}
	}

	if err := s.userRepo.UpdateProfilePicture(ctx, userID, url); err != nil {
		return "", fmt.Errorf("store profile picture url: %w", err)
	}
	return url, nil
}

// UploadedDocuments pages through the user's own documents.
func (s *profileService) UploadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error) {
	docs, total, err := s.docRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list uploaded documents: %w", err)
	}
	return &DocumentPage{Documents: docs, TotalCount: total}, nil
}

// PublicDocuments pages through a user's public documents by username.
func (s *profileService) PublicDocuments(ctx context.Context, username string, page, pageSize int) (*DocumentPage, error) {
	docs, total, err := s.docRepo.ListPublicByUsername(ctx, username, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list public documents: %w", err)
	}
	return &DocumentPage{Documents: docs, TotalCount: total}, nil
}

// DownloadedDocuments pages through documents the user downloaded.
func (s *profileService) DownloadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error) {
	docs, total, err := s.engageRepo.ListDownloadedDocuments(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list downloaded documents: %w", err)
	}
	return &DocumentPage{Documents: docs, TotalCount: total}, nil
}

// BookmarkedDocuments pages through documents the user bookmarked.
func (s *profileService) BookmarkedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) (*DocumentPage, error) {
	docs, total, err := s.engageRepo.ListBookmarkedDocuments(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list bookmarked documents: %w", err)
	}
	return &DocumentPage{Documents: docs, TotalCount: total}, nil
}

// DeleteAccount removes the user's stored objects, then deletes the user and
// every owned row in a single transaction.
func (s *profileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	// Storage cleanup happens outside the transaction: an orphaned object is
	// recoverable, an inconsistent database is not.
	docs, _, err := s.docRepo.ListByUser(ctx, userID, 1, 1000)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		if doc.FileKey != "" {
			if err := s.store.Delete(ctx, doc.FileKey); err != nil {
				log.Printf("delete stored file %s: %v", doc.FileKey, err)
			}
		}
		if doc.PreviewImage != "" {
			if err := s.store.Delete(ctx, doc.PreviewImage); err != nil {
				log.Printf("delete preview image %s: %v", doc.PreviewImage, err)
			}
		}
	}
	if user.ProfilePicture != "" {
		if old := storageKeyFromURL(user.ProfilePicture, s.store); old != "" {
			if err := s.store.Delete(ctx, old); err != nil {
				log.Printf("delete profile picture %s: %v", old, err)
			}
		}
	}

	return s.userRepo.DeleteAccount(ctx, userID)
}

// storageKeyFromURL strips the store's public URL prefix from a stored URL.
func storageKeyFromURL(url string, store storage.ObjectStore) string {
	prefix := store.PublicURL("")
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):]
	}
	return ""
}
