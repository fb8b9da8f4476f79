package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

// ErrSlugTaken is returned when a taxonomy slug already exists.
var ErrSlugTaken = errors.New("slug already exists")

// TaxonomyService handles universities and subjects. Creation is restricted
// to admin roles; search is public.
type TaxonomyService interface {
	CreateUniversity(ctx context.Context, callerRole model.Role, name, imageLink, description, slug string) (*model.University, error)
	CreateSubject(ctx context.Context, callerRole model.Role, name, description, code, slug string) (*model.Subject, error)
	GetSubjectBySlug(ctx context.Context, slug string) (*model.Subject, error)
	SearchUniversities(ctx context.Context, query string, limit int) ([]model.University, error)
	SearchSubjects(ctx context.Context, query string, limit int) ([]model.Subject, error)
	SubjectDocuments(ctx context.Context, slug string, page, pageSize int) (*DocumentPage, error)
}

type taxonomyService struct {
	taxRepo repository.TaxonomyRepository
	docRepo repository.DocumentRepository
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(taxRepo repository.TaxonomyRepository, docRepo repository.DocumentRepository) TaxonomyService {
	return &taxonomyService{taxRepo: taxRepo, docRepo: docRepo}
}

func isAdmin(role model.Role) bool {
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// CreateUniversity adds a university node. Admin only.
func (s *taxonomyService) CreateUniversity(ctx context.Context, callerRole model.Role, name, imageLink, description, slug string) (*model.University, error) {
	if !isAdmin(callerRole) {
		return nil, apperrors.ErrForbidden
	}
	if slug == "" {
		slug = Slugify(name)
	}

	u := &model.University{
		Name:        name,
		Slug:        slug,
		ImageLink:   imageLink,
		Description: description,
	}
	if err := s.taxRepo.CreateUniversity(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create university: %w", err)
	}
	return u, nil
}

// CreateSubject adds a subject node. Admin only.
func (s *taxonomyService) CreateSubject(ctx context.Context, callerRole model.Role, name, description, code, slug string) (*model.Subject, error) {
	if !isAdmin(callerRole) {
		return nil, apperrors.ErrForbidden
	}
	if slug == "" {
		slug = Slugify(name)
	}

	subject := &model.Subject{
		Name:        name,
		Code:        code,
		Slug:        slug,
		Description: description,
	}
	if err := s.taxRepo.CreateSubject(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

// GetSubjectBySlug loads one subject.
func (s *taxonomyService) GetSubjectBySlug(ctx context.Context, slug string) (*model.Subject, error) {
	subject, err := s.taxRepo.FindSubjectBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return subject, nil
}

// SearchUniversities finds universities by name substring.
func (s *taxonomyService) SearchUniversities(ctx context.Context, query string, limit int) ([]model.University, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.taxRepo.SearchUniversities(ctx, query, limit)
}

// SearchSubjects finds subjects by name or code substring.
func (s *taxonomyService) SearchSubjects(ctx context.Context, query string, limit int) ([]model.Subject, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.taxRepo.SearchSubjects(ctx, query, limit)
}

// SubjectDocuments pages through a subject's public documents.
func (s *taxonomyService) SubjectDocuments(ctx context.Context, slug string, page, pageSize int) (*DocumentPage, error) {
	subject, err := s.GetSubjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	docs, total, err := s.docRepo.ListBySubject(ctx, subject.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list subject documents: %w", err)
	}
	return &DocumentPage{Documents: docs, TotalCount: total}, nil
}
