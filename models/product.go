package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Sku       string          `gorm:"size:100;not null;unique" json:"sku" binding:"required"`
	Name      string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Category  string          `gorm:"size:100;index" json:"category"`
	Cost      decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"cost"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
