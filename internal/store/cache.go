package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/calovate/backend/internal/models"
)

// entryStore mirrors service.EntryStore so this package stays independent of
// the service layer.
type entryStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error)
	Insert(ctx context.Context, entry *models.FoodEntry) error
	Update(ctx context.Context, entry *models.FoodEntry) error
	Delete(ctx context.Context, entryID uuid.UUID) error
}

// CachedEntryStore is a cache-aside layer in front of another entry store.
// Reads are served from redis when the user's entry list is cached; every
// mutation writes through to the inner store and invalidates the cache key.
// Enabled per deployment with CACHE_MODE=aside, never mixed with the
// local-file sqlite deployment.
type CachedEntryStore struct {
	inner entryStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedEntryStore(inner entryStore, client *redis.Client, ttl time.Duration) *CachedEntryStore {
	return &CachedEntryStore{
		inner: inner,
		redis: client,
		ttl:   ttl,
	}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("calovate:entries:%s", userID)
}

func (s *CachedEntryStore) List(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error) {
	key := cacheKey(userID)

	if data, err := s.redis.Get(ctx, key).Bytes(); err == nil {
		var entries []models.FoodEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
		// Unreadable cache payload, fall through to the database.
		s.redis.Del(ctx, key)
	}

	entries, err := s.inner.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
			log.Printf("entry cache: failed to store %s: %v", key, err)
		}
	}
	return entries, nil
}

func (s *CachedEntryStore) Insert(ctx context.Context, entry *models.FoodEntry) error {
	if err := s.inner.Insert(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, entry.UserID)
	return nil
}

func (s *CachedEntryStore) Update(ctx context.Context, entry *models.FoodEntry) error {
	if err := s.inner.Update(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, entry.UserID)
	return nil
}

func (s *CachedEntryStore) Delete(ctx context.Context, entryID uuid.UUID) error {
	if err := s.inner.Delete(ctx, entryID); err != nil {
		return err
	}
	// The entry id does not identify the owner, so drop every cached list
	// whose key could contain it. Delete is rare enough that a scan is fine.
	iter := s.redis.Scan(ctx, 0, "calovate:entries:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("entry cache: scan failed: %v", err)
	}
	return nil
}

func (s *CachedEntryStore) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.redis.Del(ctx, cacheKey(userID)).Err(); err != nil {
		log.Printf("entry cache: failed to invalidate %s: %v", cacheKey(userID), err)
	}
}
