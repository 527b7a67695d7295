package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// ErrAssetNotFound is returned when no asset has the given tag.
var ErrAssetNotFound = errors.New("asset not found")

// AssetRepository encapsulates the asset inventory.
type AssetRepository interface {
	// FetchAll returns every asset, most recently updated first.
	FetchAll(ctx context.Context) ([]domain.Asset, error)
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	// Save inserts the asset or replaces the one with the same id.
	Save(ctx context.Context, asset *domain.Asset) error
}
