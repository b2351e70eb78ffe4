package metadata

import (
	"context"

	"asset-badge/blockfrost"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is used when no positive size is given.
const DefaultSize = 256

// Fetcher loads asset info keyed by unit.
type Fetcher interface {
	Asset(ctx context.Context, unit string) (*blockfrost.Asset, error)
}

// Cache wraps a Fetcher, keeps recently resolved assets and collapses
// concurrent lookups of the same unit into one request.
// Failures are never cached.
type Cache struct {
	fetcher Fetcher
	assets  *lru.Cache[string, *blockfrost.Asset]
	group   singleflight.Group
}

// New creates a cache holding at most size assets.
func New(fetcher Fetcher, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}

	assets, err := lru.New[string, *blockfrost.Asset](size)
	if err != nil {
		return nil, err
	}

	return &Cache{fetcher: fetcher, assets: assets}, nil
}

// Asset returns the cached asset or fetches it. The shared fetch outlives
// any single caller, a caller whose ctx is done returns ctx.Err() while
// the others keep waiting for the result.
func (c *Cache) Asset(ctx context.Context, unit string) (*blockfrost.Asset, error) {
	if asset, ok := c.assets.Get(unit); ok {
		return asset, nil
	}

	// The fetch is bounded by the fetcher's own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(unit, func() (interface{}, error) {
		asset, err := c.fetcher.Asset(fetchCtx, unit)
		if err != nil {
			return nil, err
		}

		c.assets.Add(unit, asset)
		return asset, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*blockfrost.Asset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
