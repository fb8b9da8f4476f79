package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ktucyber/internal/model"
)

// EngagementRepository defines bookmark and download persistence operations.
type EngagementRepository interface {
	CreateBookmark(ctx context.Context, b *model.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, documentID uuid.UUID) (int64, error)
	HasBookmark(ctx context.Context, userID, documentID uuid.UUID) (bool, error)
	ListBookmarkedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error)

	CreateDownload(ctx context.Context, d *model.Download) error
	DeleteDownload(ctx context.Context, userID, documentID uuid.UUID) (int64, error)
	ListDownloadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error)
	CountDownloadsByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CreateBookmark(ctx context.Context, b *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// DeleteBookmark removes the bookmark and reports how many rows were hit,
// so callers can distinguish a no-op from a delete.
func (r *engagementRepository) DeleteBookmark(ctx context.Context, userID, documentID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&model.Bookmark{})
	return res.RowsAffected, res.Error
}

func (r *engagementRepository) HasBookmark(ctx context.Context, userID, documentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) ListBookmarkedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Document{}).
		Joins("JOIN bookmarks ON bookmarks.document_id = documents.id").
		Where("bookmarks.user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("bookmarks.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *engagementRepository) CreateDownload(ctx context.Context, d *model.Download) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *engagementRepository) DeleteDownload(ctx context.Context, userID, documentID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&model.Download{})
	return res.RowsAffected, res.Error
}

func (r *engagementRepository) ListDownloadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Document{}).
		Joins("JOIN downloads ON downloads.document_id = documents.id").
		Where("downloads.user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("downloads.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// CountDownloadsByUploader counts downloads of documents the user uploaded.
// Used for the profile's aggregate stats.
func (r *engagementRepository) CountDownloadsByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Download{}).
		Joins("JOIN documents ON documents.id = downloads.document_id").
		Where("documents.user_id = ?", uploaderID).
		Count(&count).Error
	return count, err
}
