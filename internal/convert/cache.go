// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jborrow/ltmd/internal/cache"
)

// Cache stores converter output by key. *cache.Store implements it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// CachingConverter serves repeated inputs from a Cache and records fresh
// conversions. Cache read and write failures are logged and fall through to
// the wrapped converter.
type CachingConverter struct {
	next     Converter
	cache    Cache
	identity string
	logger   *slog.Logger
}

// NewCachingConverter wraps next. identity distinguishes converter settings
// so a change of backend or arguments never serves stale output.
func NewCachingConverter(next Converter, c Cache, identity string, logger *slog.Logger) *CachingConverter {
	if logger == nil {
		logger = Options{}.logger()
	}
	return &CachingConverter{next: next, cache: c, identity: identity, logger: logger}
}

// Convert returns the cached output for latex, or converts and stores it.
func (c *CachingConverter) Convert(ctx context.Context, latex string) (string, error) {
	key := cache.Key(c.identity, latex)

	out, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("cache read failed", "error", err)
	case ok:
		c.logger.Debug("cache hit", "key", key[:12])
		return out, nil
	}

	out, err = c.next.Convert(ctx, latex)
	if err != nil {
		return "", err
	}
	if err := c.cache.Put(ctx, key, out); err != nil {
		c.logger.Warn("cache write failed", "error", fmt.Errorf("storing %s: %w", key[:12], err))
	}
	return out, nil
}
