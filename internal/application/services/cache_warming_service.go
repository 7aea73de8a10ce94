package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/providers"
	"github.com/digitallife/lessonhub/internal/domain/queries"
)

// listingCacheTTLSeconds matches the response cache TTL for /lessons, so a
// warmed entry lives exactly as long as an organically cached one.
const listingCacheTTLSeconds = 120

// CacheWarmingService pre-fills the response cache with the default first
// listing page, the request nearly every visitor's first load issues.
type CacheWarmingService struct {
	lessons *LessonService
	cache   providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(lessons *LessonService, cache providers.CacheProvider) *CacheWarmingService {
	return &CacheWarmingService{
		lessons: lessons,
		cache:   cache,
	}
}

// WarmCache warms the default listing page for both access tiers. Each
// tier sees a different page, so each gets its own cache entry.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Println("Starting cache warming...")

	viewers := []entities.Viewer{
		{},                // anonymous free tier
		{IsPremium: true}, // premium tier
	}
	for _, viewer := range viewers {
		if err := s.warmDefaultListing(ctx, viewer); err != nil {
			log.Printf("Failed to warm %s listing: %v", viewer.Tier(), err)
		}
	}

	log.Println("Cache warming completed")
	return nil
}

// warmDefaultListing caches the first page of the unfiltered listing under
// the same key the response cache would use for that request.
func (s *CacheWarmingService) warmDefaultListing(ctx context.Context, viewer entities.Viewer) error {
	page, err := s.lessons.List(ctx, queries.ListParams{}, viewer)
	if err != nil {
		return fmt.Errorf("failed to fetch default listing: %w", err)
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal default listing: %w", err)
	}

	key := providers.ResponseCacheKey("/lessons", "", viewer.Tier())
	if err := s.cache.Set(ctx, key, data, listingCacheTTLSeconds); err != nil {
		return fmt.Errorf("failed to cache default listing: %w", err)
	}

	log.Printf("Warmed %s listing cache with %d lessons", viewer.Tier(), len(page.Lessons))
	return nil
}

// StartPeriodicWarming warms the cache immediately and then on the given
// interval until ctx is cancelled.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Printf("Initial cache warming failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					log.Printf("Periodic cache warming failed: %v", err)
				}
			}
		}
	}()
	log.Printf("Started periodic cache warming every %v", interval)
}
