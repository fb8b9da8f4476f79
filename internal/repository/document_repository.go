package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ktucyber/internal/model"
)

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	FindBySlug(ctx context.Context, slug string) (*model.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error)
	ListPublicByUsername(ctx context.Context, username string, page, pageSize int) ([]model.Document, int64, error)
	ListRecentPublic(ctx context.Context, limit int) ([]model.Document, error)
	ListBySubject(ctx context.Context, subjectID uint, page, pageSize int) ([]model.Document, int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Document{}).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindBySlug loads a document with its subject and university for the
// document view page.
func (r *documentRepository) FindBySlug(ctx context.Context, slug string) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("University").
		Where("slug = ?", slug).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Document{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) ListPublicByUsername(ctx context.Context, username string, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Document{}).
		Joins("JOIN users ON users.id = documents.user_id").
		Where("users.username = ? AND documents.is_public = ?", username, true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("documents.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) ListRecentPublic(ctx context.Context, limit int) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) ListBySubject(ctx context.Context, subjectID uint, page, pageSize int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("subject_id = ? AND is_public = ?", subjectID, true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// IncrementViews bumps the view counter in a single statement.
func (r *documentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}
