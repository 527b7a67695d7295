package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

const uniqueViolation = "23505"

const requestColumns = `id, title, location, description, issue_type, asset_id, asset_type,
               status, priority, requester, assigned_to, created_at, updated_at`

type postgresRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRequestRepository returns a Postgres-backed implementation.
func NewPostgresRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &postgresRequestRepository{pool: pool}
}

func (r *postgresRequestRepository) FetchAll(ctx context.Context) ([]domain.Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM repair_requests ORDER BY created_at DESC, seq DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *postgresRequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM repair_requests WHERE id=$1`
	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return req, err
}

func (r *postgresRequestRepository) Insert(ctx context.Context, req *domain.Request) error {
	const query = `
        INSERT INTO repair_requests (id, title, location, description, issue_type, asset_id, asset_type,
            status, priority, requester, assigned_to, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.Title,
		req.Location,
		req.Description,
		req.IssueType,
		req.AssetID,
		req.AssetType,
		req.Status,
		req.Priority,
		req.Requester,
		req.AssignedTo,
		req.CreatedAt,
		req.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return err
}

func (r *postgresRequestRepository) UpdateIf(ctx context.Context, id string, expected domain.RequestStatus, patch domain.RequestPatch) (*domain.Request, error) {
	const query = `
        UPDATE repair_requests SET
            status = COALESCE($3, status),
            assigned_to = COALESCE($4, assigned_to),
            priority = COALESCE($5, priority),
            updated_at = $6
        WHERE id=$1 AND status=$2
        RETURNING ` + requestColumns
	var status, priority *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	if patch.Priority != nil {
		p := string(*patch.Priority)
		priority = &p
	}
	updated, err := scanRequest(r.pool.QueryRow(ctx, query,
		id,
		string(expected),
		status,
		patch.AssignedTo,
		priority,
		patch.UpdatedAt,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM repair_requests WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return nil, ErrStatusMismatch
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var req domain.Request
	if err := row.Scan(
		&req.ID,
		&req.Title,
		&req.Location,
		&req.Description,
		&req.IssueType,
		&req.AssetID,
		&req.AssetType,
		&req.Status,
		&req.Priority,
		&req.Requester,
		&req.AssignedTo,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	result := []domain.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}
