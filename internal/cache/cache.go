package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/peterbourgon/diskv"
	"github.com/ygelfand/kogrid/internal/config"
)

var (
	ErrDisabled = errors.New("caching is disabled")
	ErrExpired  = errors.New("cache entry expired")
)

type CacheEntry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expires_at"` // Unix timestamp, 0 for infinite
}

type Manager struct {
	dv *diskv.Diskv
}

var (
	globalManager *Manager
	globalMu      sync.Mutex
)

// New opens a cache rooted at path, creating the directory if needed.
func New(path string) (*Manager, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	flatTransform := func(s string) []string {
		return []string{}
	}

	dv := diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &Manager{dv: dv}, nil
}

// Get returns the global cache manager instance initialized with the given path
func Get(path string) (*Manager, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalManager != nil {
		return globalManager, nil
	}
	m, err := New(path)
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// HashKey converts a potentially unsafe string into a safe MD5 hash for disk storage
func (m *Manager) HashKey(key string) string {
	h := md5.New()
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

// Key builds a cache key scoped to namespace.
func (m *Manager) Key(namespace, id string) string {
	return namespace + ":" + id
}

// Set stores data in the cache under the given key with a TTL.
func (m *Manager) Set(key string, val any, ttl time.Duration) error {
	if config.Get().NoCache {
		return nil
	}
	safeKey := m.HashKey(key)
	slog.Log(context.Background(), config.LevelTrace, "Cache: SET", "key", key, "safeKey", safeKey, "ttl", ttl)
	var data []byte
	var err error

	if b, ok := val.([]byte); ok {
		data, err = json.Marshal(b)
	} else {
		data, err = json.Marshal(val)
	}
	if err != nil {
		return err
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	entryData, err := json.Marshal(CacheEntry{Value: data, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}

	return m.dv.Write(safeKey, entryData)
}

// Get retrieves cached data into val.
func (m *Manager) Get(key string, val any) error {
	if config.Get().NoCache {
		return ErrDisabled
	}
	safeKey := m.HashKey(key)
	slog.Log(context.Background(), config.LevelTrace, "Cache: GET", "key", key, "safeKey", safeKey)
	entryData, err := m.dv.Read(safeKey)
	if err != nil {
		return err
	}

	var entry CacheEntry
	if err := json.Unmarshal(entryData, &entry); err != nil {
		return err
	}

	if entry.ExpiresAt > 0 && time.Now().Unix() > entry.ExpiresAt {
		slog.Log(context.Background(), config.LevelTrace, "Cache: EXPIRED", "key", key, "safeKey", safeKey)
		_ = m.dv.Erase(safeKey)
		return ErrExpired
	}

	return json.Unmarshal(entry.Value, val)
}

// WithCache is a helper that tries to get data from cache first, otherwise calls the fetcher
func WithCache[T any](m *Manager, key string, ttl time.Duration, val *T, fetcher func() (*T, error)) error {
	if ttl > 0 {
		if err := m.Get(key, val); err == nil {
			return nil
		}
	}
	fetched, err := fetcher()
	if err != nil {
		return err
	}

	if fetched != nil {
		*val = *fetched
		if ttl > 0 {
			return m.Set(key, fetched, ttl)
		}
	}

	return nil
}

// Delete removes a key from the cache
func (m *Manager) Delete(key string) error {
	if config.Get().NoCache {
		return nil
	}
	return m.dv.Erase(m.HashKey(key))
}
