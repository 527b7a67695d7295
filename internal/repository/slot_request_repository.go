package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// requestRecord is the serialized form kept in a Slot.
type requestRecord struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Location    string                 `json:"location"`
	Description string                 `json:"description,omitempty"`
	IssueType   domain.IssueType       `json:"issue_type"`
	AssetID     string                 `json:"asset_id,omitempty"`
	AssetType   string                 `json:"asset_type,omitempty"`
	Status      domain.RequestStatus   `json:"status"`
	Priority    domain.RequestPriority `json:"priority"`
	Requester   string                 `json:"requester"`
	AssignedTo  *string                `json:"assigned_to,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type slotRequestRepository struct {
	slot Slot
}

// NewSlotRequestRepository keeps the whole collection, newest first, as one
// JSON array in slot.
func NewSlotRequestRepository(slot Slot) RequestRepository {
	return &slotRequestRepository{slot: slot}
}

func (r *slotRequestRepository) FetchAll(ctx context.Context) ([]domain.Request, error) {
	data, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeRequests(data)
}

func (r *slotRequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	all, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *slotRequestRepository) Insert(ctx context.Context, req *domain.Request) error {
	return r.slot.Update(ctx, func(current []byte) ([]byte, error) {
		all, err := decodeRequests(current)
		if err != nil {
			return nil, err
		}
		for _, existing := range all {
			if existing.ID == req.ID {
				return nil, ErrDuplicateID
			}
		}
		all = append([]domain.Request{req.Clone()}, all...)
		return encodeRequests(all)
	})
}

func (r *slotRequestRepository) UpdateIf(ctx context.Context, id string, expected domain.RequestStatus, patch domain.RequestPatch) (*domain.Request, error) {
	var updated domain.Request
	err := r.slot.Update(ctx, func(current []byte) ([]byte, error) {
		all, err := decodeRequests(current)
		if err != nil {
			return nil, err
		}
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if all[i].Status != expected {
				return nil, ErrStatusMismatch
			}
			all[i].Apply(patch)
			updated = all[i].Clone()
			return encodeRequests(all)
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func decodeRequests(data []byte) ([]domain.Request, error) {
	if len(data) == 0 {
		return []domain.Request{}, nil
	}
	var records []requestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode request collection: %w", err)
	}
	result := make([]domain.Request, 0, len(records))
	for _, rec := range records {
		result = append(result, domain.Request{
			ID:          rec.ID,
			Title:       rec.Title,
			Location:    rec.Location,
			Description: rec.Description,
			IssueType:   rec.IssueType,
			AssetID:     rec.AssetID,
			AssetType:   rec.AssetType,
			Status:      rec.Status,
			Priority:    rec.Priority,
			Requester:   rec.Requester,
			AssignedTo:  rec.AssignedTo,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		})
	}
	return result, nil
}

func encodeRequests(requests []domain.Request) ([]byte, error) {
	records := make([]requestRecord, 0, len(requests))
	for _, req := range requests {
		records = append(records, requestRecord{
			ID:          req.ID,
			Title:       req.Title,
			Location:    req.Location,
			Description: req.Description,
			IssueType:   req.IssueType,
			AssetID:     req.AssetID,
			AssetType:   req.AssetType,
			Status:      req.Status,
			Priority:    req.Priority,
			Requester:   req.Requester,
			AssignedTo:  req.AssignedTo,
			CreatedAt:   req.CreatedAt,
			UpdatedAt:   req.UpdatedAt,
		})
	}
	return json.Marshal(records)
}
