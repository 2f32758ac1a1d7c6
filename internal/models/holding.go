package models

// Holding is a user's cumulative position in one instrument. Units and
// weighted-average cost are persisted; current price and value are derived at
// read time from the price feed.
type Holding struct {
	Base
	UserID       string  `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_user_symbol" json:"user_id"`
	Symbol       string  `gorm:"not null;uniqueIndex:idx_holdings_user_symbol" json:"symbol"`
	Units        float64 `gorm:"not null" json:"units"`
	AvgCost      float64 `gorm:"not null" json:"avg_cost"`
	CurrentPrice float64 `gorm:"-" json:"current_price"`
	CurrentValue float64 `gorm:"-" json:"current_value"`
}
