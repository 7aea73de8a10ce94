package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/providers"
)

// CacheInvalidationService drops cached listing responses when engagement
// events arrive, so like/save counters in listings converge immediately
// instead of waiting out the TTL.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for engagement events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelLessonUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to lesson updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service and releases its subscription
func (s *CacheInvalidationService) Stop() {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.eventBus.Unsubscribe(ctx, providers.EventChannelLessonUpdates); err != nil {
		log.Printf("Warning: Failed to unsubscribe from lesson updates: %v", err)
	}

	log.Println("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.LessonEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent handles a single engagement event. Listing responses embed
// the like/save counters, so every mutation drops the /lessons page cache.
// Recommendations only show titles and categories and keep their TTL; the
// detail route is never cached at all because each fetch counts a view.
func (s *CacheInvalidationService) handleEvent(event *entities.LessonEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prefix := providers.ResponseCachePrefix("/lessons")
	if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
		log.Printf("Warning: Failed to invalidate listing cache after %s on lesson %s: %v",
			event.Type, event.LessonID, err)
		return
	}
	log.Printf("Invalidated listing cache after %s on lesson %s", event.Type, event.LessonID)
}

// InvalidateAll drops every cached response. Meant for maintenance and
// bulk data loads, not the steady state.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	if err := s.cache.DeleteByPrefix(ctx, providers.ResponseCacheKeyPrefix); err != nil {
		return fmt.Errorf("failed to invalidate response cache: %w", err)
	}
	log.Println("Invalidated all cached responses")
	return nil
}
