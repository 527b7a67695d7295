package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

const assetColumns = `id, name, type, status, location, last_updated`

type postgresAssetRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAssetRepository returns a Postgres-backed inventory.
func NewPostgresAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &postgresAssetRepository{pool: pool}
}

func (r *postgresAssetRepository) FetchAll(ctx context.Context) ([]domain.Asset, error) {
	const query = `
        SELECT ` + assetColumns + `
        FROM assets ORDER BY last_updated DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *asset)
	}
	return result, rows.Err()
}

func (r *postgresAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	const query = `
        SELECT ` + assetColumns + `
        FROM assets WHERE id=$1`
	asset, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssetNotFound
	}
	return asset, err
}

func (r *postgresAssetRepository) Save(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (` + assetColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            type = EXCLUDED.type,
            status = EXCLUDED.status,
            location = EXCLUDED.location,
            last_updated = EXCLUDED.last_updated`
	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.Name,
		asset.Type,
		asset.Status,
		asset.Location,
		asset.LastUpdated,
	)
	return err
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var asset domain.Asset
	if err := row.Scan(
		&asset.ID,
		&asset.Name,
		&asset.Type,
		&asset.Status,
		&asset.Location,
		&asset.LastUpdated,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}
