// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Asset classes of tracked symbols.
const (
	AssetClassIndex  = "index"
	AssetClassETF    = "etf"
	AssetClassEquity = "equity"
)

// Symbol is a ticker the service tracks. Active symbols are listed by the API and
// refreshed by the scheduled ingest.
type Symbol struct {
	ID         uint      `gorm:"primaryKey"`
	Code       string    `gorm:"size:32;not null;uniqueIndex"`
	Name       string    `gorm:"size:255;not null"`
	AssetClass string    `gorm:"size:16;not null;default:equity"`
	IsActive   bool      `gorm:"not null;default:true"`
	SortKey    int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// DefaultSymbols seeds an empty symbol table.
func DefaultSymbols() []Symbol {
	return []Symbol{
		{Code: "^GSPC", Name: "S&P 500", AssetClass: AssetClassIndex, IsActive: true, SortKey: 1},
		{Code: "^NDX", Name: "Nasdaq 100", AssetClass: AssetClassIndex, IsActive: true, SortKey: 2},
		{Code: "SPY", Name: "SPDR S&P 500 ETF Trust", AssetClass: AssetClassETF, IsActive: true, SortKey: 3},
		{Code: "QQQ", Name: "Invesco QQQ Trust", AssetClass: AssetClassETF, IsActive: true, SortKey: 4},
		{Code: "VT", Name: "Vanguard Total World Stock ETF", AssetClass: AssetClassETF, IsActive: true, SortKey: 5},
	}
}
