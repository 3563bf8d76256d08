// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem is a tracked symbol as listed by GET /symbols.
type SymbolItem struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	AssetClass string `json:"asset_class"`
}
