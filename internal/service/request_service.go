package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/events"
	"github.com/spec-kit/repair-tracker/internal/observability"
	"github.com/spec-kit/repair-tracker/internal/repository"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// MinDescriptionLength applies to descriptions that are provided at all.
const MinDescriptionLength = 10

const (
	transitionSubmit       = "submit"
	transitionAccept       = "accept"
	transitionComplete     = "complete"
	transitionReprioritize = "reprioritize"
)

// RequestService owns the repair request lifecycle: submission, the
// pending -> in_progress -> resolved transitions, and the read views.
type RequestService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	// Clock and IDGenerator default to time.Now and uuid.NewString.
	Clock       func() time.Time
	IDGenerator func() string
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	s := &RequestService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
		newID:      deps.IDGenerator,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Submit validates draft and stores it as a new pending request owned by actor.
func (s *RequestService) Submit(ctx context.Context, actor domain.User, draft domain.RequestDraft) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.CapabilitySubmit, nil); err != nil {
		s.metrics.RecordTransition(transitionSubmit, observability.OutcomeRejected)
		return nil, err
	}
	draft = normalizeDraft(draft)
	if err := validateDraft(draft); err != nil {
		s.metrics.RecordTransition(transitionSubmit, observability.OutcomeRejected)
		return nil, err
	}

	now := s.now()
	req := &domain.Request{
		ID:          s.newID(),
		Title:       draft.Title,
		Location:    draft.Location,
		Description: draft.Description,
		IssueType:   draft.IssueType,
		AssetID:     draft.AssetID,
		AssetType:   draft.AssetType,
		Status:      domain.RequestStatusPending,
		Priority:    draft.Priority,
		Requester:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Priority == "" {
		req.Priority = domain.RequestPriorityMedium
	}

	if err := s.requests.Insert(ctx, req); err != nil {
		s.metrics.RecordTransition(transitionSubmit, observability.OutcomeFailed)
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, apperrors.NewConflict("request id already exists", map[string]any{"request_id": req.ID})
		}
		s.logger.Error("submit request failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.metrics.RecordTransition(transitionSubmit, observability.OutcomeOK)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		RequestID: req.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestSubmittedPayload{
			Title:     req.Title,
			Location:  req.Location,
			IssueType: req.IssueType,
			Priority:  req.Priority,
		},
	})
	return req, nil
}

// Accept assigns a pending request to actor and moves it to in_progress. The
// write only lands while the request is still pending, so of two technicians
// racing for the same request exactly one wins.
func (s *RequestService) Accept(ctx context.Context, actor domain.User, requestID string) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.CapabilityAccept, nil); err != nil {
		s.metrics.RecordTransition(transitionAccept, observability.OutcomeRejected)
		return nil, err
	}

	status := domain.RequestStatusInProgress
	assignee := actor.ID
	updated, err := s.requests.UpdateIf(ctx, requestID, domain.RequestStatusPending, domain.RequestPatch{
		Status:     &status,
		AssignedTo: &assignee,
		UpdatedAt:  s.now(),
	})
	if err != nil {
		return nil, s.transitionError(transitionAccept, requestID, domain.RequestStatusPending, err)
	}

	s.metrics.RecordTransition(transitionAccept, observability.OutcomeOK)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestAccepted,
		RequestID: updated.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestStatusChangedPayload{
			OldStatus:  domain.RequestStatusPending,
			NewStatus:  updated.Status,
			AssignedTo: updated.AssignedTo,
		},
	})
	return updated, nil
}

// Complete marks an in_progress request resolved. Only the assigned
// technician or an admin may complete it.
func (s *RequestService) Complete(ctx context.Context, actor domain.User, requestID string) (*domain.Request, error) {
	current, err := s.load(ctx, transitionComplete, requestID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.RequestStatusInProgress {
		return nil, s.transitionError(transitionComplete, requestID, domain.RequestStatusInProgress, repository.ErrStatusMismatch)
	}
	if err := auth.Authorize(actor, auth.CapabilityComplete, current); err != nil {
		s.metrics.RecordTransition(transitionComplete, observability.OutcomeRejected)
		return nil, err
	}

	status := domain.RequestStatusResolved
	updated, err := s.requests.UpdateIf(ctx, requestID, domain.RequestStatusInProgress, domain.RequestPatch{
		Status:    &status,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, s.transitionError(transitionComplete, requestID, domain.RequestStatusInProgress, err)
	}

	s.metrics.RecordTransition(transitionComplete, observability.OutcomeOK)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCompleted,
		RequestID: updated.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestStatusChangedPayload{
			OldStatus:  domain.RequestStatusInProgress,
			NewStatus:  updated.Status,
			AssignedTo: updated.AssignedTo,
		},
	})
	return updated, nil
}

// Reprioritize changes the priority of an open request. Admin only.
func (s *RequestService) Reprioritize(ctx context.Context, actor domain.User, requestID string, priority domain.RequestPriority) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.CapabilityReprioritize, nil); err != nil {
		s.metrics.RecordTransition(transitionReprioritize, observability.OutcomeRejected)
		return nil, err
	}
	if !priority.Valid() {
		s.metrics.RecordTransition(transitionReprioritize, observability.OutcomeRejected)
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{
			"priority": "must be one of low, medium, high",
		})
	}
	current, err := s.load(ctx, transitionReprioritize, requestID)
	if err != nil {
		return nil, err
	}
	if !current.Status.Open() {
		return nil, s.transitionError(transitionReprioritize, requestID, current.Status, repository.ErrStatusMismatch)
	}

	updated, err := s.requests.UpdateIf(ctx, requestID, current.Status, domain.RequestPatch{
		Priority:  &priority,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, s.transitionError(transitionReprioritize, requestID, current.Status, err)
	}

	s.metrics.RecordTransition(transitionReprioritize, observability.OutcomeOK)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestReprioritized,
		RequestID: updated.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestReprioritizedPayload{
			OldPriority: current.Priority,
			NewPriority: updated.Priority,
		},
	})
	return updated, nil
}

// Get returns a single request.
func (s *RequestService) Get(ctx context.Context, requestID string) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.readError(requestID, err)
	}
	return req, nil
}

// List returns the collection filtered by query. Without a sort the
// persisted newest-first order is kept.
func (s *RequestService) List(ctx context.Context, query ListQuery) ([]domain.Request, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterRequests(all, query.Status, query.Search)
	switch query.Sort {
	case SortPriority:
		return SortByPriority(filtered), nil
	case SortRecent:
		return SortByRecency(filtered), nil
	}
	return filtered, nil
}

// AssignedTo returns the active worklist of a technician, most urgent first.
func (s *RequestService) AssignedTo(ctx context.Context, technicianID string) ([]domain.Request, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return SortByPriority(ActiveWorklist(all, technicianID)), nil
}

// History returns resolved and closed requests matching search.
func (s *RequestService) History(ctx context.Context, search string) ([]domain.Request, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRequests(Finished(all), StatusAll, search), nil
}

// Stats summarizes the collection for the dashboard.
func (s *RequestService) Stats(ctx context.Context) (Stats, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(all), nil
}

// Recent returns the newest limit requests.
func (s *RequestService) Recent(ctx context.Context, limit int) ([]domain.Request, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	all = SortByRecency(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *RequestService) fetchAll(ctx context.Context) ([]domain.Request, error) {
	all, err := s.requests.FetchAll(ctx)
	if err != nil {
		s.logger.Error("fetch requests failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return all, nil
}

func (s *RequestService) load(ctx context.Context, transition, requestID string) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordTransition(transition, observability.OutcomeRejected)
		} else {
			s.metrics.RecordTransition(transition, observability.OutcomeFailed)
		}
		return nil, s.readError(requestID, err)
	}
	return req, nil
}

func (s *RequestService) readError(requestID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
	}
	s.logger.Error("read request failed", zap.String("request_id", requestID), zap.Error(err))
	return apperrors.NewStoreUnavailable(err)
}

func (s *RequestService) transitionError(transition, requestID string, expected domain.RequestStatus, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.metrics.RecordTransition(transition, observability.OutcomeRejected)
		return apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
	case errors.Is(err, repository.ErrStatusMismatch):
		s.metrics.RecordTransition(transition, observability.OutcomeRejected)
		s.logger.Warn("transition rejected",
			zap.String("transition", transition),
			zap.String("request_id", requestID),
			zap.String("expected_status", string(expected)))
		return apperrors.NewInvalidTransition("request status changed; refresh and retry", map[string]any{
			"request_id":      requestID,
			"transition":      transition,
			"expected_status": expected,
		})
	}
	s.metrics.RecordTransition(transition, observability.OutcomeFailed)
	s.logger.Error("transition failed",
		zap.String("transition", transition),
		zap.String("request_id", requestID),
		zap.Error(err))
	return apperrors.NewStoreUnavailable(err)
}

func normalizeDraft(draft domain.RequestDraft) domain.RequestDraft {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Location = strings.TrimSpace(draft.Location)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.IssueType = domain.IssueType(strings.ToLower(strings.TrimSpace(string(draft.IssueType))))
	draft.Priority = domain.RequestPriority(strings.ToLower(strings.TrimSpace(string(draft.Priority))))
	draft.AssetID = strings.TrimSpace(draft.AssetID)
	draft.AssetType = strings.ToLower(strings.TrimSpace(draft.AssetType))
	return draft
}

func validateDraft(draft domain.RequestDraft) error {
	fields := map[string]any{}
	if draft.Title == "" {
		fields["title"] = "title is required"
	}
	if draft.Location == "" {
		fields["location"] = "location is required"
	}
	switch {
	case draft.IssueType == "":
		fields["issue_type"] = "issue type is required"
	case !draft.IssueType.Valid():
		fields["issue_type"] = "issue type must be one of hardware, software, network, peripheral, other"
	}
	if draft.Description != "" && utf8.RuneCountInString(draft.Description) < MinDescriptionLength {
		fields["description"] = "description must be at least 10 characters"
	}
	if draft.AssetType != "" && !domain.AssetType(draft.AssetType).Valid() {
		fields["asset_type"] = "asset type must be one of computer, printer, network, projector, other"
	}
	if draft.Priority != "" && !draft.Priority.Valid() {
		fields["priority"] = "priority must be one of low, medium, high"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid request", fields)
	}
	return nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func actorOf(user domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}
