package domain

import "time"

// AssetType categorizes inventory items.
type AssetType string

const (
	AssetTypeComputer  AssetType = "computer"
	AssetTypePrinter   AssetType = "printer"
	AssetTypeNetwork   AssetType = "network"
	AssetTypeProjector AssetType = "projector"
	AssetTypeOther     AssetType = "other"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeComputer, AssetTypePrinter, AssetTypeNetwork, AssetTypeProjector, AssetTypeOther:
		return true
	}
	return false
}

// AssetStatus is the operating condition of an asset.
type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "operational"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusBroken      AssetStatus = "broken"
)

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusOperational, AssetStatusMaintenance, AssetStatusBroken:
		return true
	}
	return false
}

// Asset is an inventory item identified by its tag, e.g. PC-LAB1-01.
type Asset struct {
	ID          string
	Name        string
	Type        AssetType
	Status      AssetStatus
	Location    string
	LastUpdated time.Time
}
