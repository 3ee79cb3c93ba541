package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/scoring"
)

// ReportCache guarda reportes por huella de respuestas para no repetir llamadas al LLM.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.Report, bool, error)
	Set(ctx context.Context, key string, report domain.Report, ttl time.Duration) error
}

// cacheKeyItem es una pregunta del catálogo tal como entra a la huella.
type cacheKeyItem struct {
	ID       string  `json:"id"`
	Answered bool    `json:"answered"`
	Value    float64 `json:"value"`
}

// ReportCacheKey hashes the catalog of schema in catalog order, recording for
// each question whether it was answered and its rating. IDs outside the
// catalog never reach the key, the same as they never reach the scores.
func ReportCacheKey(schema scoring.Schema, responses scoring.ResponseSet) string {
	catalog := scoring.Catalog(schema)
	items := make([]cacheKeyItem, 0, len(catalog))
	for _, q := range catalog {
		item := cacheKeyItem{ID: q.ID}
		if v, ok := responses[q.ID]; ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			item.Answered = true
			item.Value = v
		}
		items = append(items, item)
	}
	payload, _ := json.Marshal(struct {
		Schema scoring.Schema `json:"schema"`
		Items  []cacheKeyItem `json:"items"`
	}{Schema: schema, Items: items})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// memorySweepInterval acota cada cuánto Set recorre el mapa buscando vencidos.
const memorySweepInterval = time.Minute

type memoryReportCache struct {
	mu        sync.Mutex
	items     map[string]memoryCacheEntry
	now       func() time.Time
	lastSweep time.Time
}

type memoryCacheEntry struct {
	report    domain.Report
	expiresAt time.Time
}

func NewMemoryReportCache() ReportCache {
	return &memoryReportCache{
		items: make(map[string]memoryCacheEntry),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (c *memoryReportCache) Get(_ context.Context, key string) (*domain.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	report := entry.report
	return &report, true, nil
}

func (c *memoryReportCache) Set(_ context.Context, key string, report domain.Report, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if now.Sub(c.lastSweep) >= memorySweepInterval {
		for k, entry := range c.items {
			if now.After(entry.expiresAt) {
				delete(c.items, k)
			}
		}
		c.lastSweep = now
	}
	c.items[key] = memoryCacheEntry{report: report, expiresAt: now.Add(ttl)}
	return nil
}

type redisReportCache struct {
	client *redis.Client
	prefix string
}

func NewRedisReportCache(client *redis.Client) ReportCache {
	if client == nil {
		return nil
	}
	return &redisReportCache{
		client: client,
		prefix: "quiz:report:",
	}
}

func (c *redisReportCache) Get(ctx context.Context, key string) (*domain.Report, bool, error) {
	if strings.TrimSpace(key) == "" {
		return nil, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var report domain.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, report domain.Report, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}
