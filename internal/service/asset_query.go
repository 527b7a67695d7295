package service

import (
	"strings"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

// AssetQuery selects assets for the inventory listing. Type and Status take
// their enum values or StatusAll; empty means all.
type AssetQuery struct {
	Type   string
	Status string
	Search string
}

// FilterAssets keeps assets matching the type, the status and the search
// term. Search is a case-insensitive substring of name, location or id.
// The input order is preserved.
func FilterAssets(assets []domain.Asset, query AssetQuery) []domain.Asset {
	needle := strings.ToLower(query.Search)
	result := make([]domain.Asset, 0, len(assets))
	for _, asset := range assets {
		if !matchesAll(query.Type, string(asset.Type)) || !matchesAll(query.Status, string(asset.Status)) {
			continue
		}
		if needle != "" && !matchesAssetSearch(asset, needle) {
			continue
		}
		result = append(result, asset)
	}
	return result
}

func matchesAll(filter, value string) bool {
	return filter == "" || filter == StatusAll || filter == value
}

func matchesAssetSearch(asset domain.Asset, needle string) bool {
	for _, field := range []string{asset.Name, asset.Location, asset.ID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
