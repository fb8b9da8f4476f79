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

// ErrAlreadyRecorded is returned when a bookmark or download already exists
// for the (user, document) pair.
var ErrAlreadyRecorded = errors.New("already recorded for this document")

// UploadDocumentInput carries validated document metadata.
type UploadDocumentInput struct {
	Slug         string
	Title        string
	Description  string
	SubjectID    uint
	UniversityID uint
	DocumentType string
	FileKey      string
	PreviewImage string
	IsPublic     bool
	Tags         []string
}

// UpdateDocumentInput carries the fields an owner may change.
type UpdateDocumentInput struct {
	Title       string
	Description string
	IsPublic    bool
	Tags        []string
}

// DocumentService handles document CRUD and engagement. Every mutation
// requires the caller's subject ID and checks ownership fetch-then-compare,
// so a missing document reports not-found before any ownership failure.
type DocumentService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in UploadDocumentInput) (*model.Document, error)
	UploadFile(ctx context.Context, ownerID uuid.UUID, filename string, data []byte, contentType string) (key string, url string, err error)
	GetBySlug(ctx context.Context, slug string) (*model.Document, error)
	Update(ctx context.Context, callerID, documentID uuid.UUID, in UpdateDocumentInput) (*model.Document, error)
	Delete(ctx context.Context, callerID, documentID uuid.UUID) error
	Bookmark(ctx context.Context, callerID, documentID uuid.UUID) error
	Unbookmark(ctx context.Context, callerID, documentID uuid.UUID) error
	RecordDownload(ctx context.Context, callerID, documentID uuid.UUID) error
	RemoveDownload(ctx context.Context, callerID, documentID uuid.UUID) error
}

type documentService struct {
	docRepo    repository.DocumentRepository
	engageRepo repository.EngagementRepository
	store      storage.ObjectStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docRepo repository.DocumentRepository,
	engageRepo repository.EngagementRepository,
	store storage.ObjectStore,
) DocumentService {
	return &documentService{
		docRepo:    docRepo,
		engageRepo: engageRepo,
		store:      store,
	}
}

// Upload inserts document metadata for a file already placed in storage.
func (s *documentService) Upload(ctx context.Context, ownerID uuid.UUID, in UploadDocumentInput) (*model.Document, error) {
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	doc := &model.Document{
		ID:           uuid.New(),
		Slug:         slug,
		UserID:       ownerID,
		Title:        in.Title,
		Description:  in.Description,
		SubjectID:    in.SubjectID,
		UniversityID: in.UniversityID,
		DocumentType: in.DocumentType,
		FileKey:      in.FileKey,
		PreviewImage: in.PreviewImage,
		IsPublic:     in.IsPublic,
		Tags:         in.Tags,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("document slug %q already exists", slug)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// UploadFile puts the raw file into object storage under the owner's prefix.
func (s *documentService) UploadFile(ctx context.Context, ownerID uuid.UUID, filename string, data []byte, contentType string) (string, string, error) {
	key := storage.DocumentKey(ownerID, filename)
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return "", "", fmt.Errorf("upload file: %w", err)
	}
	return key, url, nil
}

// GetBySlug loads a document for viewing and bumps its view counter.
func (s *documentService) GetBySlug(ctx context.Context, slug string) (*model.Document, error) {
	doc, err := s.docRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	if err := s.docRepo.IncrementViews(ctx, doc.ID); err != nil {
		log.Printf("increment views for %s: %v", doc.ID, err)
	}
	return doc, nil
}

// Update modifies a document the caller owns.
func (s *documentService) Update(ctx context.Context, callerID, documentID uuid.UUID, in UpdateDocumentInput) (*model.Document, error) {
	doc, err := s.fetchOwned(ctx, callerID, documentID)
	if err != nil {
		return nil, err
	}

	doc.Title = in.Title
	doc.Description = in.Description
	doc.IsPublic = in.IsPublic
	doc.Tags = in.Tags
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

// Delete removes a document the caller owns, including its stored file and
// preview image.
func (s *documentService) Delete(ctx context.Context, callerID, documentID uuid.UUID) error {
	doc, err := s.fetchOwned(ctx, callerID, documentID)
	if err != nil {
		return err
	}

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

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Bookmark saves the document for the caller. One bookmark per pair.
func (s *documentService) Bookmark(ctx context.Context, callerID, documentID uuid.UUID) error {
	if err := s.ensureExists(ctx, documentID); err != nil {
		return err
	}
	err := s.engageRepo.CreateBookmark(ctx, &model.Bookmark{UserID: callerID, DocumentID: documentID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyRecorded
	}
	return err
}

// Unbookmark removes the caller's bookmark.
func (s *documentService) Unbookmark(ctx context.Context, callerID, documentID uuid.UUID) error {
	affected, err := s.engageRepo.DeleteBookmark(ctx, callerID, documentID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBookmarkNotFound
	}
	return nil
}

// RecordDownload records that the caller downloaded the document.
func (s *documentService) RecordDownload(ctx context.Context, callerID, documentID uuid.UUID) error {
	if err := s.ensureExists(ctx, documentID); err != nil {
		return err
	}
	err := s.engageRepo.CreateDownload(ctx, &model.Download{UserID: callerID, DocumentID: documentID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyRecorded
	}
	return err
}

// RemoveDownload removes the caller's download record.
func (s *documentService) RemoveDownload(ctx context.Context, callerID, documentID uuid.UUID) error {
	affected, err := s.engageRepo.DeleteDownload(ctx, callerID, documentID)
	if err != nil {
		return fmt.Errorf("delete download: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDownloadNotFound
	}
	return nil
}

// fetchOwned loads a document and verifies the caller owns it.
// Not-found wins over not-owned.
func (s *documentService) fetchOwned(ctx context.Context, callerID, documentID uuid.UUID) (*model.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	if doc.UserID != callerID {
		return nil, apperrors.ErrForbidden
	}
	return doc, nil
}

func (s *documentService) ensureExists(ctx context.Context, documentID uuid.UUID) error {
	if _, err := s.docRepo.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return fmt.Errorf("find document: %w", err)
	}
	return nil
}
