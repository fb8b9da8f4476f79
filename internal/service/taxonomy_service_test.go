package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

// MockTaxonomyRepository is a mock implementation of TaxonomyRepository.
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) CreateUniversity(ctx context.Context, u *model.University) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) FindSubjectBySlug(ctx context.Context, slug string) (*model.Subject, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subject), args.Error(1)
}

func (m *MockTaxonomyRepository) SearchUniversities(ctx context.Context, query string, limit int) ([]model.University, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.University), args.Error(1)
}

func (m *MockTaxonomyRepository) SearchSubjects(ctx context.Context, query string, limit int) ([]model.Subject, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockTaxonomyRepository) TrendingSubjects(ctx context.Context, since time.Time, limit int) ([]repository.TrendingSubject, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TrendingSubject), args.Error(1)
}

func TestTaxonomyService_CreateUniversity(t *testing.T) {
	tests := []struct {
		name          string
		role          model.Role
		setupMock     func(*MockTaxonomyRepository)
		expectedError error
	}{
		{
			name: "admin can create",
			role: model.RoleAdmin,
			setupMock: func(mRepo *MockTaxonomyRepository) {
				mRepo.On("CreateUniversity", mock.Anything, mock.AnythingOfType("*model.University")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "superadmin can create",
			role: model.RoleSuperAdmin,
			setupMock: func(mRepo *MockTaxonomyRepository) {
				mRepo.On("CreateUniversity", mock.Anything, mock.AnythingOfType("*model.University")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "regular user is forbidden",
			role:          model.RoleUser,
			setupMock:     func(mRepo *MockTaxonomyRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name: "duplicate slug",
			role: model.RoleAdmin,
			setupMock: func(mRepo *MockTaxonomyRepository) {
				mRepo.On("CreateUniversity", mock.Anything, mock.AnythingOfType("*model.University")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: ErrSlugTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaxonomyRepository)
			tt.setupMock(mockRepo)

			service := NewTaxonomyService(mockRepo, new(MockDocumentRepository))
			u, err := service.CreateUniversity(context.Background(), tt.role, "Kaunas University of Technology", "", "", "")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "kaunas-university-of-technology", u.Slug)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaxonomyService_CreateSubject_RequiresAdmin(t *testing.T) {
	service := NewTaxonomyService(new(MockTaxonomyRepository), new(MockDocumentRepository))
	subject, err := service.CreateSubject(context.Background(), model.RoleUser, "Databases", "", "T120B145", "")
	assert.Equal(t, apperrors.ErrForbidden, err)
	assert.Nil(t, subject)
}

func TestTaxonomyService_SearchClampsLimit(t *testing.T) {
	mockRepo := new(MockTaxonomyRepository)
	mockRepo.On("SearchSubjects", mock.Anything, "data", 10).Return([]model.Subject{}, nil).Times(3)
	mockRepo.On("SearchSubjects", mock.Anything, "data", 25).Return([]model.Subject{}, nil).Once()

	service := NewTaxonomyService(mockRepo, new(MockDocumentRepository))

	for _, limit := range []int{0, -5, 999} {
		_, err := service.SearchSubjects(context.Background(), "data", limit)
		assert.NoError(t, err)
	}
	_, err := service.SearchSubjects(context.Background(), "data", 25)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestTaxonomyService_SubjectDocuments(t *testing.T) {
	t.Run("missing subject", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		mockRepo.On("FindSubjectBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		service := NewTaxonomyService(mockRepo, new(MockDocumentRepository))
		page, err := service.SubjectDocuments(context.Background(), "nope", 1, 10)
		assert.Equal(t, apperrors.ErrSubjectNotFound, err)
		assert.Nil(t, page)
	})

	t.Run("pages documents for the subject", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		mockDocs := new(MockDocumentRepository)
		mockRepo.On("FindSubjectBySlug", mock.Anything, "databases").Return(&model.Subject{ID: 3, Slug: "databases"}, nil)
		mockDocs.On("ListBySubject", mock.Anything, uint(3), 1, 10).Return([]model.Document{{Title: "Exam notes"}}, int64(1), nil)

		service := NewTaxonomyService(mockRepo, mockDocs)
		page, err := service.SubjectDocuments(context.Background(), "databases", 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalCount)
		assert.Len(t, page.Documents, 1)
	})
}
