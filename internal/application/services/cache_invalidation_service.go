package services

import (
	"context"
	"fmt"
	"time"

	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

// adCacheKey mirrors the key format used by the cached ad adapter.
func adCacheKey(id string) string {
	return "ad:" + id
}

// CacheInvalidationService drops cached ad entries when a rating fanout
// invalidates them. Listing caches are left to expire by TTL.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service.
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for ad events and invalidating cache.
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelAdUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to ad updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service.
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.AdEvent) {
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

func (s *CacheInvalidationService) handleEvent(event *entities.AdEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().
		Str("event_id", event.ID).
		Str("doctor_id", event.DoctorID).
		Str("event_type", string(event.EventType)).
		Msg("processing cache invalidation")

	// Single-ad entries must reflect the new rating immediately; listing
	// caches carry short TTLs and refresh on their own.
	for _, adID := range event.AdIDs {
		if err := s.cache.Delete(ctx, adCacheKey(adID)); err != nil {
			log.Warn().Err(err).Str("ad_id", adID).Msg("failed to invalidate ad cache")
		}
	}
}

// InvalidateListingCaches drops every cached listing. Intended for
// maintenance and bulk data loads only.
func (s *CacheInvalidationService) InvalidateListingCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, "ads:list:*"); err != nil {
		return fmt.Errorf("failed to invalidate listing caches: %w", err)
	}
	log.Info().Msg("invalidated all ad listing caches")
	return nil
}
