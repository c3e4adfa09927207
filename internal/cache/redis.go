package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Availability cache keys
const availabilityKeyFmt = "availability:%d:%s" // service_id, date

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// authKey derives the cache key from the email alone, so a password change
// can drop the entry without knowing which password it was cached under.
func authKey(email string) string {
	h := sha256.Sum256([]byte(email))
	return "auth:" + hex.EncodeToString(h[:])[:32]
}

// encodeAuthValue packs the user id together with a digest of the password
// the entry was cached for.
func encodeAuthValue(userID int, password string) string {
	h := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%d:%s", userID, hex.EncodeToString(h[:])[:32])
}

// decodeAuthValue returns the cached user id when the stored digest matches
// the presented password.
func decodeAuthValue(val, password string) (int, bool) {
	var userID int
	var digest string
	if _, err := fmt.Sscanf(val, "%d:%s", &userID, &digest); err != nil {
		return 0, false
	}
	h := sha256.Sum256([]byte(password))
	if digest != hex.EncodeToString(h[:])[:32] {
		return 0, false
	}
	return userID, true
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	val, err := client.Get(ctx, authKey(email)).Result()
	if err != nil {
		return 0, false
	}
	return decodeAuthValue(val, password)
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, authKey(email), encodeAuthValue(userID, password), 15*time.Minute)
}

// InvalidateAuth drops the cached credential entry for an email, whatever
// password it was cached under. Called on password change.
func InvalidateAuth(ctx context.Context, email string) {
	if client == nil {
		return
	}
	client.Del(ctx, authKey(email))
}

// GetCachedAvailability returns the cached slot list for a (service, date)
// pair if available.
func GetCachedAvailability(ctx context.Context, serviceID int, date string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	key := fmt.Sprintf(availabilityKeyFmt, serviceID, date)
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheAvailability caches the slot list for a (service, date) pair.
// Short TTL: bookings written from another process must surface quickly.
func CacheAvailability(ctx context.Context, serviceID int, date string, data []byte) {
	if client == nil {
		return
	}
	key := fmt.Sprintf(availabilityKeyFmt, serviceID, date)
	client.Set(ctx, key, data, 60*time.Second)
}

// InvalidateAvailability removes cached availability for a service
// (all dates) after a booking write.
func InvalidateAvailability(ctx context.Context, serviceID int) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", serviceID)
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// Ping reports whether the cache is connected. Returns an error when the
// cache was never initialized or the connection dropped.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis not initialized")
	}
	return client.Ping(ctx).Err()
}
