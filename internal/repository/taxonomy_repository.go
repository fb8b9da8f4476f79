package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ktucyber/internal/model"
)

// TrendingSubject is a subject ranked by recent upload activity.
type TrendingSubject struct {
	model.Subject
	DocumentCount int64 `json:"document_count"`
}

// TaxonomyRepository defines university and subject persistence operations.
type TaxonomyRepository interface {
	CreateUniversity(ctx context.Context, u *model.University) error
	CreateSubject(ctx context.Context, s *model.Subject) error
	FindSubjectBySlug(ctx context.Context, slug string) (*model.Subject, error)
	SearchUniversities(ctx context.Context, query string, limit int) ([]model.University, error)
	SearchSubjects(ctx context.Context, query string, limit int) ([]model.Subject, error)
	TrendingSubjects(ctx context.Context, since time.Time, limit int) ([]TrendingSubject, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new taxonomy repository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) CreateUniversity(ctx context.Context, u *model.University) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *taxonomyRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *taxonomyRepository) FindSubjectBySlug(ctx context.Context, slug string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *taxonomyRepository) SearchUniversities(ctx context.Context, query string, limit int) ([]model.University, error) {
	var universities []model.University
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (r *taxonomyRepository) SearchSubjects(ctx context.Context, query string, limit int) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).
		Where("name LIKE ? OR code LIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// TrendingSubjects ranks subjects by number of public documents uploaded
// since the given time.
func (r *taxonomyRepository) TrendingSubjects(ctx context.Context, since time.Time, limit int) ([]TrendingSubject, error) {
	var subjects []TrendingSubject
	if err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Select("subjects.*, COUNT(documents.id) AS document_count").
		Joins("JOIN documents ON documents.subject_id = subjects.id").
		Where("documents.is_public = ? AND documents.created_at >= ?", true, since).
		Group("subjects.id").
		Order("document_count DESC").
		Limit(limit).
		Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}
