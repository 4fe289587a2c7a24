package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentSnapshot is one inventory adjustment scraped from the WMS.
// The training flag report aggregates these by operator over a trailing
// window; the engine never writes them.
type AdjustmentSnapshot struct {
	ID             int             `gorm:"primary_key" json:"id"`
	UserId         *int            `gorm:"index" json:"user_id"`
	Sku            string          `gorm:"size:100;index" json:"sku"`
	LocationCode   string          `gorm:"size:50;index" json:"location_code"`
	AdjustmentQty  decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"adjustment_qty"`
	Reason         string          `gorm:"size:255" json:"reason"`
	AdjustmentDate time.Time       `gorm:"not null;index" json:"adjustment_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
