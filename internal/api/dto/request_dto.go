package dto

import (
	"time"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/service"
)

// CreateRequestRequest is the payload of POST /api/v1/requests.
type CreateRequestRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	IssueType   string `json:"issue_type"`
	Priority    string `json:"priority"`
	AssetID     string `json:"asset_id"`
	AssetType   string `json:"asset_type"`
}

// Draft converts the payload for the service.
func (r CreateRequestRequest) Draft() domain.RequestDraft {
	return domain.RequestDraft{
		Title:       r.Title,
		Location:    r.Location,
		Description: r.Description,
		IssueType:   domain.IssueType(r.IssueType),
		Priority:    domain.RequestPriority(r.Priority),
		AssetID:     r.AssetID,
		AssetType:   r.AssetType,
	}
}

// ReprioritizeRequest is the payload of PATCH /api/v1/requests/:id/priority.
type ReprioritizeRequest struct {
	Priority string `json:"priority"`
}

// RequestResponse renders a repair request.
type RequestResponse struct {
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
	AssignedTo  *string                `json:"assigned_to"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewRequestResponse maps a domain request.
func NewRequestResponse(req *domain.Request) RequestResponse {
	return RequestResponse{
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
	}
}

// NewRequestList maps a slice, never returning nil so that JSON renders [].
func NewRequestList(requests []domain.Request) []RequestResponse {
	items := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, NewRequestResponse(&requests[i]))
	}
	return items
}

// DashboardResponse is the body of GET /api/v1/dashboard.
type DashboardResponse struct {
	Stats  service.Stats     `json:"stats"`
	Recent []RequestResponse `json:"recent"`
}

// AssetResponse renders an inventory asset.
type AssetResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        domain.AssetType   `json:"type"`
	Status      domain.AssetStatus `json:"status"`
	Location    string             `json:"location"`
	LastUpdated time.Time          `json:"last_updated"`
}

// NewAssetResponse maps a domain asset.
func NewAssetResponse(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:          asset.ID,
		Name:        asset.Name,
		Type:        asset.Type,
		Status:      asset.Status,
		Location:    asset.Location,
		LastUpdated: asset.LastUpdated,
	}
}

// NewAssetList maps a slice, never returning nil.
func NewAssetList(assets []domain.Asset) []AssetResponse {
	items := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, NewAssetResponse(&assets[i]))
	}
	return items
}
