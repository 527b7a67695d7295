package service

import (
	"slices"
	"strings"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Sort orders accepted by List.
const (
	SortNone     = ""
	SortPriority = "priority"
	SortRecent   = "recent"
)

// ListQuery selects and orders requests for a listing.
type ListQuery struct {
	// Status is a request status or StatusAll; empty means all.
	Status string
	Search string
	Sort   string
}

// Stats is the dashboard summary of the collection.
type Stats struct {
	Total      int                            `json:"total"`
	ByStatus   map[domain.RequestStatus]int   `json:"by_status"`
	OpenByPrio map[domain.RequestPriority]int `json:"open_by_priority"`
}

// FilterRequests keeps requests whose status matches status (or any status
// for StatusAll and "") and whose title, location, requester or id contains
// search, ignoring case. Only the empty search matches everything; spaces in
// search are significant. The input order is preserved.
func FilterRequests(requests []domain.Request, status, search string) []domain.Request {
	needle := strings.ToLower(search)
	result := make([]domain.Request, 0, len(requests))
	for _, req := range requests {
		if status != "" && status != StatusAll && string(req.Status) != status {
			continue
		}
		if needle != "" && !matchesSearch(req, needle) {
			continue
		}
		result = append(result, req)
	}
	return result
}

func matchesSearch(req domain.Request, needle string) bool {
	for _, field := range []string{req.Title, req.Location, req.Requester, req.ID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortByPriority returns a copy ordered high, medium, low. Requests of equal
// priority keep their relative order.
func SortByPriority(requests []domain.Request) []domain.Request {
	sorted := slices.Clone(requests)
	slices.SortStableFunc(sorted, func(a, b domain.Request) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return sorted
}

// SortByRecency returns a copy ordered newest created first; ties keep their
// relative order.
func SortByRecency(requests []domain.Request) []domain.Request {
	sorted := slices.Clone(requests)
	slices.SortStableFunc(sorted, func(a, b domain.Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sorted
}

// ActiveWorklist keeps the in_progress requests assigned to technicianID.
func ActiveWorklist(requests []domain.Request, technicianID string) []domain.Request {
	result := make([]domain.Request, 0)
	for _, req := range requests {
		if req.Status == domain.RequestStatusInProgress && req.IsAssignedTo(technicianID) {
			result = append(result, req)
		}
	}
	return result
}

// Finished keeps resolved and closed requests.
func Finished(requests []domain.Request) []domain.Request {
	result := make([]domain.Request, 0)
	for _, req := range requests {
		if req.Status == domain.RequestStatusResolved || req.Status == domain.RequestStatusClosed {
			result = append(result, req)
		}
	}
	return result
}

// Summarize counts requests per status, and open requests per priority.
func Summarize(requests []domain.Request) Stats {
	stats := Stats{
		Total: len(requests),
		ByStatus: map[domain.RequestStatus]int{
			domain.RequestStatusPending:    0,
			domain.RequestStatusInProgress: 0,
			domain.RequestStatusResolved:   0,
			domain.RequestStatusClosed:     0,
		},
		OpenByPrio: map[domain.RequestPriority]int{
			domain.RequestPriorityHigh:   0,
			domain.RequestPriorityMedium: 0,
			domain.RequestPriorityLow:    0,
		},
	}
	for _, req := range requests {
		stats.ByStatus[req.Status]++
		if req.Status.Open() {
			stats.OpenByPrio[req.Priority]++
		}
	}
	return stats
}
