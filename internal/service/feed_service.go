package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ktucyber/internal/cache"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
)

const (
	feedCacheTTL       = 10 * time.Minute
	trendingWindow     = 30 * 24 * time.Hour
	trendingCacheKey   = "home:trending_subjects"
	recentDocsCacheKey = "home:recent_documents"
)

// HomeFeed is the landing-page payload: trending subjects and recent uploads.
type HomeFeed struct {
	TrendingSubjects []repository.TrendingSubject `json:"trending_subjects"`
	RecentDocuments  []model.Document             `json:"recent_documents"`
}

// FeedService builds the home feed, cached in Redis with a short TTL.
type FeedService interface {
	HomeFeed(ctx context.Context) (*HomeFeed, error)
	RefreshHomeFeed(ctx context.Context) error
}

type feedService struct {
	taxRepo repository.TaxonomyRepository
	docRepo repository.DocumentRepository
	cache   *cache.Client
}

// NewFeedService creates a new feed service.
func NewFeedService(taxRepo repository.TaxonomyRepository, docRepo repository.DocumentRepository, cache *cache.Client) FeedService {
	return &feedService{taxRepo: taxRepo, docRepo: docRepo, cache: cache}
}

// HomeFeed returns the cached feed, rebuilding it on a miss.
func (s *feedService) HomeFeed(ctx context.Context) (*HomeFeed, error) {
	feed := &HomeFeed{}

	hitSubjects := false
	if data, _ := s.cache.Get(ctx, trendingCacheKey); data != nil {
		if err := json.Unmarshal(data, &feed.TrendingSubjects); err == nil {
			hitSubjects = true
		}
	}
	hitDocs := false
	if data, _ := s.cache.Get(ctx, recentDocsCacheKey); data != nil {
		if err := json.Unmarshal(data, &feed.RecentDocuments); err == nil {
			hitDocs = true
		}
	}
	if hitSubjects && hitDocs {
		return feed, nil
	}

	if !hitSubjects {
		subjects, err := s.taxRepo.TrendingSubjects(ctx, time.Now().Add(-trendingWindow), 10)
		if err != nil {
			return nil, fmt.Errorf("trending subjects: %w", err)
		}
		feed.TrendingSubjects = subjects
		if payload, err := json.Marshal(subjects); err == nil {
			_ = s.cache.Set(ctx, trendingCacheKey, payload, feedCacheTTL)
		}
	}
	if !hitDocs {
		docs, err := s.docRepo.ListRecentPublic(ctx, 10)
		if err != nil {
			return nil, fmt.Errorf("recent documents: %w", err)
		}
		feed.RecentDocuments = docs
		if payload, err := json.Marshal(docs); err == nil {
			_ = s.cache.Set(ctx, recentDocsCacheKey, payload, feedCacheTTL)
		}
	}
	return feed, nil
}

// RefreshHomeFeed drops both cache entries so the next read rebuilds them.
func (s *feedService) RefreshHomeFeed(ctx context.Context) error {
	_ = s.cache.Delete(ctx, trendingCacheKey)
	_ = s.cache.Delete(ctx, recentDocsCacheKey)
	return nil
}
