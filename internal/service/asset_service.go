package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// AssetService reads the asset inventory.
type AssetService struct {
	assets repository.AssetRepository
	logger *zap.Logger
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo repository.AssetRepository
	Logger    *zap.Logger
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	s := &AssetService{assets: deps.AssetRepo, logger: deps.Logger}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// List returns the inventory filtered by query, most recently updated first.
func (s *AssetService) List(ctx context.Context, query AssetQuery) ([]domain.Asset, error) {
	all, err := s.assets.FetchAll(ctx)
	if err != nil {
		s.logger.Error("fetch assets failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return FilterAssets(all, query), nil
}

// Get returns a single asset by tag.
func (s *AssetService) Get(ctx context.Context, assetID string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if errors.Is(err, repository.ErrAssetNotFound) {
		return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
	}
	if err != nil {
		s.logger.Error("read asset failed", zap.String("asset_id", assetID), zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return asset, nil
}
