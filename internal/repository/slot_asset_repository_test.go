package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
)

func sampleAsset(id string, status domain.AssetStatus, updated time.Time) domain.Asset {
	return domain.Asset{
		ID:          id,
		Name:        "Lab Desktop PC",
		Type:        domain.AssetTypeComputer,
		Status:      status,
		Location:    "Computer Lab 1",
		LastUpdated: updated,
	}
}

func TestSlotAssetRepository(t *testing.T) {
	for name, factory := range slotFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.NewSlotAssetRepository(factory(t))

			all, err := repo.FetchAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			older := sampleAsset("PC-LAB1-01", domain.AssetStatusOperational, baseTime)
			newer := sampleAsset("PC-LAB1-02", domain.AssetStatusMaintenance, baseTime.Add(time.Hour))
			require.NoError(t, repo.Save(ctx, &older))
			require.NoError(t, repo.Save(ctx, &newer))

			all, err = repo.FetchAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "PC-LAB1-02", all[0].ID, "most recently updated first")

			older.Status = domain.AssetStatusBroken
			older.LastUpdated = baseTime.Add(2 * time.Hour)
			require.NoError(t, repo.Save(ctx, &older))

			all, err = repo.FetchAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2, "save replaces by id")
			assert.Equal(t, "PC-LAB1-01", all[0].ID)
			assert.Equal(t, domain.AssetStatusBroken, all[0].Status)

			got, err := repo.GetByID(ctx, "PC-LAB1-02")
			require.NoError(t, err)
			assert.Equal(t, domain.AssetStatusMaintenance, got.Status)
			assert.True(t, got.LastUpdated.Equal(newer.LastUpdated))

			_, err = repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repository.ErrAssetNotFound)
		})
	}
}
