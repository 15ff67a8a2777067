// Package cache memoizes finished reports so re-polling a terminal job
// does not rerun the pipeline.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"meetscribe/internal/app/model"
)

// ReportCache stores finished reports keyed by the provider job URL.
type ReportCache interface {
	Get(ctx context.Context, jobURL string) (*model.Report, bool, error)
	Set(ctx context.Context, jobURL string, report *model.Report) error
}

// RedisReportCache implements ReportCache on Redis with a TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(addr string, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func reportKey(jobURL string) string {
	sum := sha256.Sum256([]byte(jobURL))
	return "meetscribe:report:" + hex.EncodeToString(sum[:16])
}

func (c *RedisReportCache) Get(ctx context.Context, jobURL string) (*model.Report, bool, error) {
	payload, err := c.client.Get(ctx, reportKey(jobURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("report cache get: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		// A corrupt entry is treated as a miss; the pipeline rebuilds it.
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, jobURL string, report *model.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("report cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(jobURL), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("report cache set: %w", err)
	}
	return nil
}

// NopReportCache disables memoization.
type NopReportCache struct{}

func NewNopReportCache() *NopReportCache {
	return &NopReportCache{}
}

func (c *NopReportCache) Get(ctx context.Context, jobURL string) (*model.Report, bool, error) {
	return nil, false, nil
}

func (c *NopReportCache) Set(ctx context.Context, jobURL string, report *model.Report) error {
	return nil
}
