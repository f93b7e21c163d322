package hotel_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joy095/roomstay/logger"
)

// City search results are cached briefly to keep repeated searches off the
// database. Every write that can change a city's hotels, rooms, or ledgers
// must invalidate the city's key; the TTL is only a backstop.
const (
	cityCachePrefix = "hotel_search:city:"
	cityCacheTTL    = 60 * time.Second
)

func cityCacheKey(city string) string {
	return cityCachePrefix + city
}

// GetCachedCityHotels returns the cached hotel list for a city, or
// (nil, false) on a miss. Cache errors are logged and treated as misses.
func GetCachedCityHotels(ctx context.Context, rdb *redis.Client, city string) ([]Hotel, bool) {
	val, err := rdb.Get(ctx, cityCacheKey(city)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.ErrorLogger.Errorf("Redis error reading city cache for %q: %v", city, err)
		}
		return nil, false
	}

	var hotels []Hotel
	if err := json.Unmarshal([]byte(val), &hotels); err != nil {
		logger.ErrorLogger.Errorf("Corrupt city cache entry for %q: %v", city, err)
		return nil, false
	}
	return hotels, true
}

// CacheCityHotels stores the hotel list for a city. Best effort.
func CacheCityHotels(ctx context.Context, rdb *redis.Client, city string, hotels []Hotel) {
	data, err := json.Marshal(hotels)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to marshal city cache for %q: %v", city, err)
		return
	}
	if err := rdb.Set(ctx, cityCacheKey(city), data, cityCacheTTL).Err(); err != nil {
		logger.ErrorLogger.Errorf("Redis error writing city cache for %q: %v", city, err)
	}
}

// InvalidateCityCache drops the cached search results for a city.
func InvalidateCityCache(ctx context.Context, rdb *redis.Client, city string) error {
	if err := rdb.Del(ctx, cityCacheKey(city)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate city cache for %q: %w", city, err)
	}
	return nil
}
