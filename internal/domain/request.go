package domain

import "time"

// RequestStatus enumerates lifecycle states for repair requests.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusResolved   RequestStatus = "resolved"
	RequestStatusClosed     RequestStatus = "closed"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusResolved, RequestStatusClosed:
		return true
	}
	return false
}

// Open reports whether the request still needs work.
func (s RequestStatus) Open() bool {
	return s == RequestStatusPending || s == RequestStatusInProgress
}

// RequestPriority enumerates repair urgency.
type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "low"
	RequestPriorityMedium RequestPriority = "medium"
	RequestPriorityHigh   RequestPriority = "high"
)

// Valid reports whether p is a known priority.
func (p RequestPriority) Valid() bool {
	switch p {
	case RequestPriorityLow, RequestPriorityMedium, RequestPriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities by urgency, most urgent first. Unknown values sort last.
func (p RequestPriority) Rank() int {
	switch p {
	case RequestPriorityHigh:
		return 0
	case RequestPriorityMedium:
		return 1
	case RequestPriorityLow:
		return 2
	}
	return 3
}

// IssueType categorizes the reported fault.
type IssueType string

const (
	IssueTypeHardware   IssueType = "hardware"
	IssueTypeSoftware   IssueType = "software"
	IssueTypeNetwork    IssueType = "network"
	IssueTypePeripheral IssueType = "peripheral"
	IssueTypeOther      IssueType = "other"
)

// Valid reports whether t is a known issue type.
func (t IssueType) Valid() bool {
	switch t {
	case IssueTypeHardware, IssueTypeSoftware, IssueTypeNetwork, IssueTypePeripheral, IssueTypeOther:
		return true
	}
	return false
}

// Request is a repair request filed against a college asset.
type Request struct {
	ID          string
	Title       string
	Location    string
	Description string
	IssueType   IssueType
	AssetID     string
	AssetType   string
	Status      RequestStatus
	Priority    RequestPriority
	Requester   string
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a copy that shares no pointers with r.
func (r Request) Clone() Request {
	if r.AssignedTo != nil {
		assignee := *r.AssignedTo
		r.AssignedTo = &assignee
	}
	return r
}

// IsAssignedTo reports whether the request is held by the given technician.
func (r Request) IsAssignedTo(userID string) bool {
	return r.AssignedTo != nil && *r.AssignedTo == userID
}

// RequestDraft is the user-supplied part of a new request.
type RequestDraft struct {
	Title       string
	Location    string
	Description string
	IssueType   IssueType
	Priority    RequestPriority
	AssetID     string
	AssetType   string
}

// RequestPatch lists the fields a transition changes. Nil fields are left as is.
type RequestPatch struct {
	Status     *RequestStatus
	AssignedTo *string
	Priority   *RequestPriority
	UpdatedAt  time.Time
}

// Apply writes the patch onto r.
func (r *Request) Apply(patch RequestPatch) {
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		assignee := *patch.AssignedTo
		r.AssignedTo = &assignee
	}
	if patch.Priority != nil {
		r.Priority = *patch.Priority
	}
	if !patch.UpdatedAt.IsZero() {
		r.UpdatedAt = patch.UpdatedAt
	}
}
