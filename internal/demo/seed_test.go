package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
)

func TestSeedFillsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSlotRequestRepository(repository.NewMemorySlot())
	now := time.Date(2025, 4, 7, 12, 0, 0, 0, time.UTC)

	n, err := Seed(ctx, repo, now, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Broken monitor", all[0].Title)
	assert.Equal(t, "Printer not working", all[4].Title)

	n, err = Seed(ctx, repo, now, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSampleRequestsHonorAssignmentRule(t *testing.T) {
	for _, req := range Requests(time.Now()) {
		if req.Status == domain.RequestStatusPending {
			assert.Nil(t, req.AssignedTo, req.Title)
			continue
		}
		require.NotNil(t, req.AssignedTo, req.Title)
		assert.Equal(t, TechnicianID, *req.AssignedTo)
		assert.False(t, req.UpdatedAt.Before(req.CreatedAt))
	}
}

func TestSeedAssetsFillsEmptyInventoryOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSlotAssetRepository(repository.NewMemorySlot())

	n, err := SeedAssets(ctx, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 12)
	assert.Equal(t, "PC-LAB1-01", all[0].ID)
	assert.Equal(t, "PC-LAB3-01", all[11].ID)

	n, err = SeedAssets(ctx, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSampleRequestsReferenceInventory(t *testing.T) {
	inventory := map[string]domain.Asset{}
	for _, asset := range Assets() {
		require.True(t, asset.Type.Valid(), asset.ID)
		require.True(t, asset.Status.Valid(), asset.ID)
		inventory[asset.ID] = asset
	}
	for _, req := range Requests(time.Now()) {
		asset, ok := inventory[req.AssetID]
		require.True(t, ok, req.Title)
		assert.Equal(t, string(asset.Type), req.AssetType, req.Title)
	}
}
