package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

var (
	// ErrNotFound is returned when no request has the given id.
	ErrNotFound = errors.New("request not found")
	// ErrStatusMismatch is returned by UpdateIf when the stored status no
	// longer equals the expected one.
	ErrStatusMismatch = errors.New("request status changed")
	// ErrDuplicateID is returned by Insert when the id is already taken.
	ErrDuplicateID = errors.New("request id already exists")
)

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	// FetchAll returns every request, newest first.
	FetchAll(ctx context.Context) ([]domain.Request, error)
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	Insert(ctx context.Context, req *domain.Request) error
	// UpdateIf applies patch only while the stored status equals expected.
	UpdateIf(ctx context.Context, id string, expected domain.RequestStatus, patch domain.RequestPatch) (*domain.Request, error)
}
