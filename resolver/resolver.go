// Package resolver turns Blockfrost asset info into the display name and
// image shown by a badge.
package resolver

import (
	"context"
	"errors"

	"asset-badge/blockfrost"
	"asset-badge/models"
)

// ErrAlreadyLoaded is returned for assets whose metadata was already
// reported, no request is made for them.
var ErrAlreadyLoaded = errors.New("asset metadata already loaded")

// Fetcher loads asset info keyed by unit.
type Fetcher interface {
	Asset(ctx context.Context, unit string) (*blockfrost.Asset, error)
}

// Resolver resolves display metadata of assets.
type Resolver struct {
	fetcher Fetcher
	gateway string
}

// New creates a resolver, gateway is the base url ipfs links are served from.
func New(fetcher Fetcher, gateway string) *Resolver {
	return &Resolver{fetcher: fetcher, gateway: gateway}
}

// Resolve fetches the asset and picks its display name and image.
// An asset unknown to Blockfrost resolves to its own fallback name.
func (r *Resolver) Resolve(ctx context.Context, asset *models.Asset) (models.Metadata, error) {
	if asset.Loaded {
		return models.Metadata{}, ErrAlreadyLoaded
	}

	result, err := r.fetcher.Asset(ctx, asset.Unit)
	if err != nil {
		if !errors.Is(err, blockfrost.ErrNotFound) {
			return models.Metadata{}, err
		}
		result = &blockfrost.Asset{}
	}

	return models.Metadata{
		DisplayName: r.displayName(asset, result),
		ImageURI:    r.imageURI(result),
	}, nil
}

// Fallback is the metadata of an asset nothing could be resolved for.
func Fallback(asset *models.Asset) models.Metadata {
	return models.Metadata{DisplayName: asset.Name}
}

func (r *Resolver) displayName(asset *models.Asset, result *blockfrost.Asset) string {
	if m := result.OnchainMetadata; m != nil && m.Name != "" {
		return m.Name.String()
	}

	if m := result.Metadata; m != nil && m.Name != "" {
		return m.Name
	}

	return asset.Name
}

func (r *Resolver) imageURI(result *blockfrost.Asset) string {
	if m := result.OnchainMetadata; m != nil {
		if link, ok := LinkToHTTPS(m.Image.String(), r.gateway); ok {
			return link
		}
	}

	if m := result.Metadata; m != nil && m.Logo != "" {
		return m.Logo
	}

	return ""
}
