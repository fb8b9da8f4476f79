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
)

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindBySlug(ctx context.Context, slug string) (*model.Document, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) ListPublicByUsername(ctx context.Context, username string, page, pageSize int) ([]model.Document, int64, error) {
	args := m.Called(ctx, username, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) ListRecentPublic(ctx context.Context, limit int) ([]model.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListBySubject(ctx context.Context, subjectID uint, page, pageSize int) ([]model.Document, int64, error) {
	args := m.Called(ctx, subjectID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEngagementRepository is a mock implementation of EngagementRepository.
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateBookmark(ctx context.Context, b *model.Bookmark) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteBookmark(ctx context.Context, userID, documentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) HasBookmark(ctx context.Context, userID, documentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ListBookmarkedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementRepository) CreateDownload(ctx context.Context, d *model.Download) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteDownload(ctx context.Context, userID, documentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) ListDownloadedDocuments(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Document, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementRepository) CountDownloadsByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, uploaderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStore is a mock implementation of storage.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func TestDocumentService_Update_OwnershipGuard(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	docID := uuid.New()

	tests := []struct {
		name          string
		callerID      uuid.UUID
		setupMock     func(*MockDocumentRepository)
		expectedError error
	}{
		{
			name:     "owner can update",
			callerID: ownerID,
			setupMock: func(mRepo *MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(&model.Document{
					ID:     docID,
					UserID: ownerID,
					Title:  "Old title",
				}, nil)
				mRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Document")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "non-owner is forbidden",
			callerID: strangerID,
			setupMock: func(mRepo *MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(&model.Document{
					ID:     docID,
					UserID: ownerID,
				}, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:     "missing document reports not-found before ownership",
			callerID: strangerID,
			setupMock: func(mRepo *MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrDocumentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDocumentRepository)
			tt.setupMock(mockRepo)

			service := NewDocumentService(mockRepo, new(MockEngagementRepository), new(MockObjectStore))
			doc, err := service.Update(context.Background(), tt.callerID, docID, UpdateDocumentInput{
				Title: "New title",
			})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "New title", doc.Title)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Delete_RemovesStoredObjects(t *testing.T) {
	ownerID := uuid.New()
	docID := uuid.New()

	mockRepo := new(MockDocumentRepository)
	mockStore := new(MockObjectStore)
	mockRepo.On("FindByID", mock.Anything, docID).Return(&model.Document{
		ID:           docID,
		UserID:       ownerID,
		FileKey:      "documents/abc/file.pdf",
		PreviewImage: "documents/abc/preview.png",
	}, nil)
	mockStore.On("Delete", mock.Anything, "documents/abc/file.pdf").Return(nil)
	mockStore.On("Delete", mock.Anything, "documents/abc/preview.png").Return(nil)
	mockRepo.On("Delete", mock.Anything, docID).Return(nil)

	service := NewDocumentService(mockRepo, new(MockEngagementRepository), mockStore)
	err := service.Delete(context.Background(), ownerID, docID)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestDocumentService_Upload_DefaultsSlugFromTitle(t *testing.T) {
	ownerID := uuid.New()

	mockRepo := new(MockDocumentRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Document")).Return(nil)

	service := NewDocumentService(mockRepo, new(MockEngagementRepository), new(MockObjectStore))
	doc, err := service.Upload(context.Background(), ownerID, UploadDocumentInput{
		Title:        "Operating Systems: Exam Notes 2026!",
		SubjectID:    1,
		UniversityID: 1,
		DocumentType: "notes",
		FileKey:      "documents/key.pdf",
	})

	assert.NoError(t, err)
	assert.Equal(t, "operating-systems-exam-notes-2026", doc.Slug)
	assert.Equal(t, ownerID, doc.UserID)

	mockRepo.AssertExpectations(t)
}

func TestDocumentService_Bookmark(t *testing.T) {
	callerID := uuid.New()
	docID := uuid.New()

	t.Run("bookmark missing document", func(t *testing.T) {
		mockRepo := new(MockDocumentRepository)
		mockRepo.On("FindByID", mock.Anything, docID).Return(nil, gorm.ErrRecordNotFound)

		service := NewDocumentService(mockRepo, new(MockEngagementRepository), new(MockObjectStore))
		err := service.Bookmark(context.Background(), callerID, docID)
		assert.Equal(t, apperrors.ErrDocumentNotFound, err)
	})

	t.Run("duplicate bookmark maps to already recorded", func(t *testing.T) {
		mockRepo := new(MockDocumentRepository)
		mockEngage := new(MockEngagementRepository)
		mockRepo.On("FindByID", mock.Anything, docID).Return(&model.Document{ID: docID}, nil)
		mockEngage.On("CreateBookmark", mock.Anything, mock.AnythingOfType("*model.Bookmark")).Return(gorm.ErrDuplicatedKey)

		service := NewDocumentService(mockRepo, mockEngage, new(MockObjectStore))
		err := service.Bookmark(context.Background(), callerID, docID)
		assert.Equal(t, ErrAlreadyRecorded, err)
	})

	t.Run("removing an absent bookmark is not-found", func(t *testing.T) {
		mockEngage := new(MockEngagementRepository)
		mockEngage.On("DeleteBookmark", mock.Anything, callerID, docID).Return(int64(0), nil)

		service := NewDocumentService(new(MockDocumentRepository), mockEngage, new(MockObjectStore))
		err := service.Unbookmark(context.Background(), callerID, docID)
		assert.Equal(t, apperrors.ErrBookmarkNotFound, err)
	})
}
