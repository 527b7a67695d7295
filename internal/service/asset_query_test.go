package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

func inventoryFixture() []domain.Asset {
	at := time.Date(2025, 4, 5, 9, 0, 0, 0, time.UTC)
	return []domain.Asset{
		{ID: "PC-LAB1-01", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusOperational, Location: "Computer Lab 1", LastUpdated: at},
		{ID: "PRINTER-LIB-01", Name: "HP LaserJet", Type: domain.AssetTypePrinter, Status: domain.AssetStatusOperational, Location: "Library", LastUpdated: at},
		{ID: "PROJ-LH1-01", Name: "Epson Projector", Type: domain.AssetTypeProjector, Status: domain.AssetStatusBroken, Location: "Lecture Hall 1", LastUpdated: at},
		{ID: "PRINTER-ADMIN-01", Name: "Canon Multifunction", Type: domain.AssetTypePrinter, Status: domain.AssetStatusMaintenance, Location: "Admin Office", LastUpdated: at},
		{ID: "PC-LAB3-01", Name: "Lab Desktop PC", Type: domain.AssetTypeComputer, Status: domain.AssetStatusBroken, Location: "Computer Lab 3", LastUpdated: at},
	}
}

func assetIDs(assets []domain.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.ID)
	}
	return out
}

func TestFilterAssetsByType(t *testing.T) {
	all := inventoryFixture()

	assert.Len(t, FilterAssets(all, AssetQuery{}), 5)
	assert.Len(t, FilterAssets(all, AssetQuery{Type: StatusAll}), 5)
	assert.Equal(t, []string{"PRINTER-LIB-01", "PRINTER-ADMIN-01"}, assetIDs(FilterAssets(all, AssetQuery{Type: "printer"})))
	assert.Empty(t, FilterAssets(all, AssetQuery{Type: "network"}))
}

func TestFilterAssetsByStatus(t *testing.T) {
	all := inventoryFixture()

	assert.Equal(t, []string{"PROJ-LH1-01", "PC-LAB3-01"}, assetIDs(FilterAssets(all, AssetQuery{Status: "broken"})))
	assert.Equal(t, []string{"PC-LAB3-01"}, assetIDs(FilterAssets(all, AssetQuery{Type: "computer", Status: "broken"})))
	assert.Len(t, FilterAssets(all, AssetQuery{Status: StatusAll}), 5)
}

func TestFilterAssetsBySearch(t *testing.T) {
	all := inventoryFixture()

	assert.Equal(t, []string{"PROJ-LH1-01"}, assetIDs(FilterAssets(all, AssetQuery{Search: "epson"})), "name")
	assert.Equal(t, []string{"PRINTER-LIB-01"}, assetIDs(FilterAssets(all, AssetQuery{Search: "LIBRARY"})), "location")
	assert.Equal(t, []string{"PC-LAB3-01"}, assetIDs(FilterAssets(all, AssetQuery{Search: "pc-lab3"})), "id")
	assert.Equal(t, []string{"PC-LAB1-01", "PC-LAB3-01"}, assetIDs(FilterAssets(all, AssetQuery{Search: "computer lab", Type: StatusAll, Status: StatusAll})))
	assert.Empty(t, FilterAssets(all, AssetQuery{Search: " "}))
	assert.Empty(t, FilterAssets(all, AssetQuery{Search: "epson", Status: "operational"}))
}
