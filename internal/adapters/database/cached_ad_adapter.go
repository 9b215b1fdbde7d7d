package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/providers"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/rs/zerolog/log"
)

// Cache TTLs (in seconds)
const (
	adByIDTTL = 300 // 5 minutes for single ads
	adListTTL = 180 // 3 minutes for listings
)

func adCacheKey(id string) string {
	return "ad:" + id
}

func adCategoryListCacheKey(categoryID string) string {
	return fmt.Sprintf("ads:list:category:%s", categoryID)
}

func adCityListCacheKey(city string, minRating, maxRating float64) string {
	return fmt.Sprintf("ads:list:city:%s:%.1f:%.1f", city, minRating, maxRating)
}

// CachedAdAdapter wraps an AdRepository with read-through caching. Writes
// pass through and drop the affected single-ad entry; listing entries
// expire by TTL.
type CachedAdAdapter struct {
	adapter repositories.AdRepository
	cache   providers.CacheProvider
}

// NewCachedAdAdapter creates a new cached ad adapter
func NewCachedAdAdapter(adapter repositories.AdRepository, cache providers.CacheProvider) repositories.AdRepository {
	return &CachedAdAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Create creates a new ad
func (a *CachedAdAdapter) Create(ctx context.Context, ad *entities.Ad) error {
	return a.adapter.Create(ctx, ad)
}

// GetByID retrieves an ad by ID with read-through caching
func (a *CachedAdAdapter) GetByID(ctx context.Context, id string) (*entities.Ad, error) {
	cacheKey := adCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var ad entities.Ad
		if err := json.Unmarshal(cached, &ad); err == nil {
			return &ad, nil
		}
		log.Warn().Str("ad_id", id).Msg("failed to unmarshal cached ad")
	}

	ad, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.storeAsync(cacheKey, ad, adByIDTTL)
	return ad, nil
}

// ListByDoctor retrieves all ads owned by a doctor. Not cached: the rating
// fanout reads this set and must see fresh data.
func (a *CachedAdAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Ad, error) {
	return a.adapter.ListByDoctor(ctx, doctorID)
}

// ListByCategory retrieves all ads in a category with caching
func (a *CachedAdAdapter) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Ad, error) {
	cacheKey := adCategoryListCacheKey(categoryID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var ads []*entities.Ad
		if err := json.Unmarshal(cached, &ads); err == nil {
			return ads, nil
		}
	}

	ads, err := a.adapter.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	a.storeAsync(cacheKey, ads, adListTTL)
	return ads, nil
}

// ListByCityAndRatingBetween retrieves well-rated ads in a city with caching
func (a *CachedAdAdapter) ListByCityAndRatingBetween(ctx context.Context, city string, minRating, maxRating float64) ([]*entities.Ad, error) {
	cacheKey := adCityListCacheKey(city, minRating, maxRating)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var ads []*entities.Ad
		if err := json.Unmarshal(cached, &ads); err == nil {
			return ads, nil
		}
	}

	ads, err := a.adapter.ListByCityAndRatingBetween(ctx, city, minRating, maxRating)
	if err != nil {
		return nil, err
	}

	a.storeAsync(cacheKey, ads, adListTTL)
	return ads, nil
}

// Update updates an ad and drops its cached entry
func (a *CachedAdAdapter) Update(ctx context.Context, ad *entities.Ad) error {
	if err := a.adapter.Update(ctx, ad); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, adCacheKey(ad.ID)); err != nil {
		log.Warn().Err(err).Str("ad_id", ad.ID).Msg("failed to drop cached ad after update")
	}
	return nil
}

// Delete deletes an ad and drops its cached entry
func (a *CachedAdAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, adCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("ad_id", id).Msg("failed to drop cached ad after delete")
	}
	return nil
}

// storeAsync updates the cache off the request path.
func (a *CachedAdAdapter) storeAsync(key string, value interface{}, ttlSeconds int) {
	go func() {
		data, err := json.Marshal(value)
		if err != nil {
			return
		}
		if err := a.cache.Set(context.Background(), key, data, ttlSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache value")
		}
	}()
}
