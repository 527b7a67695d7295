package demo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
)

// Identities that own the sample requests.
const (
	RequesterID  = "faculty-demo"
	TechnicianID = "tech-demo"
)

type sample struct {
	title       string
	location    string
	description string
	issueType   domain.IssueType
	assetID     string
	assetType   domain.AssetType
	status      domain.RequestStatus
	priority    domain.RequestPriority
	age         time.Duration
}

// Oldest first, so that inserting in order leaves the newest on top.
var samples = []sample{
	{"Printer not working", "Library", "Paper jams on every print job from the front desk.", domain.IssueTypePeripheral, "PRINTER-LIB-01", domain.AssetTypePrinter, domain.RequestStatusResolved, domain.RequestPriorityMedium, 96 * time.Hour},
	{"Network connectivity", "Admin Office", "Wired ports drop the connection every few minutes.", domain.IssueTypeNetwork, "PC-ADMIN-01", domain.AssetTypeComputer, domain.RequestStatusInProgress, domain.RequestPriorityHigh, 72 * time.Hour},
	{"Software installation", "Faculty Room", "MATLAB needs to be installed on the shared workstation.", domain.IssueTypeSoftware, "PC-FACULTY-01", domain.AssetTypeComputer, domain.RequestStatusInProgress, domain.RequestPriorityMedium, 48 * time.Hour},
	{"Projector bulb replacement", "Lecture Hall 1", "Projector image is dim and the lamp warning is on.", domain.IssueTypeHardware, "PROJ-LH1-01", domain.AssetTypeProjector, domain.RequestStatusPending, domain.RequestPriorityLow, 24 * time.Hour},
	{"Broken monitor", "Computer Lab 3", "Monitor at station 7 shows no signal.", domain.IssueTypeHardware, "PC-LAB3-01", domain.AssetTypeComputer, domain.RequestStatusPending, domain.RequestPriorityHigh, 2 * time.Hour},
}

// Requests builds the sample collection relative to now, newest first.
func Requests(now time.Time) []domain.Request {
	out := make([]domain.Request, len(samples))
	for i, s := range samples {
		created := now.Add(-s.age).UTC()
		req := domain.Request{
			ID:          fmt.Sprintf("demo-%d", i+1),
			Title:       s.title,
			Location:    s.location,
			Description: s.description,
			IssueType:   s.issueType,
			AssetID:     s.assetID,
			AssetType:   string(s.assetType),
			Status:      s.status,
			Priority:    s.priority,
			Requester:   RequesterID,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		if s.status != domain.RequestStatusPending {
			tech := TechnicianID
			req.AssignedTo = &tech
			req.UpdatedAt = created.Add(time.Hour)
		}
		out[len(samples)-1-i] = req
	}
	return out
}

// Seed fills an empty store with the sample requests. A store that already
// holds requests is left untouched. It returns the number inserted.
func Seed(ctx context.Context, repo repository.RequestRepository, now time.Time, logger *zap.Logger) (int, error) {
	existing, err := repo.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("check store: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("store not empty; skipping demo seed", zap.Int("requests", len(existing)))
		return 0, nil
	}

	requests := Requests(now)
	for i := len(requests) - 1; i >= 0; i-- {
		if err := repo.Insert(ctx, &requests[i]); err != nil {
			return len(requests) - 1 - i, fmt.Errorf("seed %s: %w", requests[i].ID, err)
		}
	}
	logger.Info("demo requests seeded", zap.Int("requests", len(requests)))
	return len(requests), nil
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 9, 0, 0, 0, time.UTC)
}

// Assets returns the sample inventory, most recently updated first.
func Assets() []domain.Asset {
	return []domain.Asset{
		{ID: "PC-LAB1-01", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusOperational, Location: "Computer Lab 1", LastUpdated: day(time.April, 5)},
		{ID: "PC-LAB1-02", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusMaintenance, Location: "Computer Lab 1", LastUpdated: day(time.April, 4)},
		{ID: "PRINTER-LIB-01", Name: "HP LaserJet", Type: domain.AssetTypePrinter, Status: domain.AssetStatusOperational, Location: "Library", LastUpdated: day(time.April, 3)},
		{ID: "PROJ-LH1-01", Name: "Epson Projector", Type: domain.AssetTypeProjector, Status: domain.AssetStatusBroken, Location: "Lecture Hall 1", LastUpdated: day(time.April, 2)},
		{ID: "PC-ADMIN-01", Name: "Admin Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusOperational, Location: "Admin Office", LastUpdated: day(time.April, 2)},
		{ID: "ROUTER-B1-01", Name: "Cisco Router", Type: domain.AssetTypeNetwork, Status: domain.AssetStatusOperational, Location: "Building 1, Floor 1", LastUpdated: day(time.April, 1)},
		{ID: "PC-LAB2-01", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusOperational, Location: "Computer Lab 2", LastUpdated: day(time.April, 1)},
		{ID: "PRINTER-ADMIN-01", Name: "Canon Multifunction", Type: domain.AssetTypePrinter, Status: domain.AssetStatusMaintenance, Location: "Admin Office", LastUpdated: day(time.March, 30)},
		{ID: "PC-FACULTY-01", Name: "Faculty Laptop", Type: domain.AssetTypeComputer, Status: domain.AssetStatusOperational, Location: "Faculty Room", LastUpdated: day(time.March, 29)},
		{ID: "PROJ-LH2-01", Name: "Epson Projector", Type: domain.AssetTypeProjector, Status: domain.AssetStatusOperational, Location: "Lecture Hall 2", LastUpdated: day(time.March, 28)},
		{ID: "SWITCH-B2-01", Name: "Cisco Switch", Type: domain.AssetTypeNetwork, Status: domain.AssetStatusOperational, Location: "Building 2, Floor 1", LastUpdated: day(time.March, 27)},
		{ID: "PC-LAB3-01", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusBroken, Location: "Computer Lab 3", LastUpdated: day(time.March, 26)},
	}
}

// SeedAssets fills an empty inventory with the sample assets.
func SeedAssets(ctx context.Context, repo repository.AssetRepository, logger *zap.Logger) (int, error) {
	existing, err := repo.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("check inventory: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("inventory not empty; skipping demo seed", zap.Int("assets", len(existing)))
		return 0, nil
	}

	assets := Assets()
	for i := range assets {
		if err := repo.Save(ctx, &assets[i]); err != nil {
			return i, fmt.Errorf("seed asset %s: %w", assets[i].ID, err)
		}
	}
	logger.Info("demo assets seeded", zap.Int("assets", len(assets)))
	return len(assets), nil
}
