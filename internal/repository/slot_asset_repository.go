package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

type assetRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        domain.AssetType   `json:"type"`
	Status      domain.AssetStatus `json:"status"`
	Location    string             `json:"location"`
	LastUpdated time.Time          `json:"last_updated"`
}

type slotAssetRepository struct {
	slot Slot
}

// NewSlotAssetRepository keeps the inventory as one JSON array in slot.
func NewSlotAssetRepository(slot Slot) AssetRepository {
	return &slotAssetRepository{slot: slot}
}

func (r *slotAssetRepository) FetchAll(ctx context.Context) ([]domain.Asset, error) {
	data, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAssets(data)
}

func (r *slotAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	all, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrAssetNotFound
}

func (r *slotAssetRepository) Save(ctx context.Context, asset *domain.Asset) error {
	return r.slot.Update(ctx, func(current []byte) ([]byte, error) {
		all, err := decodeAssets(current)
		if err != nil {
			return nil, err
		}
		all = slices.DeleteFunc(all, func(a domain.Asset) bool { return a.ID == asset.ID })
		all = append(all, *asset)
		slices.SortStableFunc(all, func(a, b domain.Asset) int {
			return b.LastUpdated.Compare(a.LastUpdated)
		})
		return encodeAssets(all)
	})
}

func decodeAssets(data []byte) ([]domain.Asset, error) {
	if len(data) == 0 {
		return []domain.Asset{}, nil
	}
	var records []assetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode asset inventory: %w", err)
	}
	result := make([]domain.Asset, 0, len(records))
	for _, rec := range records {
		result = append(result, domain.Asset{
			ID:          rec.ID,
			Name:        rec.Name,
			Type:        rec.Type,
			Status:      rec.Status,
			Location:    rec.Location,
			LastUpdated: rec.LastUpdated,
		})
	}
	return result, nil
}

func encodeAssets(assets []domain.Asset) ([]byte, error) {
	records := make([]assetRecord, 0, len(assets))
	for _, a := range assets {
		records = append(records, assetRecord{
			ID:          a.ID,
			Name:        a.Name,
			Type:        a.Type,
			Status:      a.Status,
			Location:    a.Location,
			LastUpdated: a.LastUpdated,
		})
	}
	return json.Marshal(records)
}
