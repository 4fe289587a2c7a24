package models

import (
	"context"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/shopspring/decimal"
)

// Discrepancy is a detected mismatch between recorded and expected inventory
// for a SKU/location. Rows are owned by the detection pipeline; the action
// engine only ever reads them and only while status is OPEN.
type Discrepancy struct {
	ID            string              `gorm:"primary_key;size:36" json:"id"`
	Sku           string              `gorm:"size:100;index;not null" json:"sku" binding:"required"`
	LocationCode  string              `gorm:"size:50;index;not null" json:"location_code" binding:"required"`
	Type          DiscrepancyType     `gorm:"type:enum('negative_on_hand', 'adjustment_spike', 'drift_detected', 'other');not null" json:"type" binding:"required"`
	Severity      DiscrepancySeverity `gorm:"type:enum('critical', 'high', 'medium', 'low');not null" json:"severity" binding:"required"`
	Variance      int                 `json:"variance"`
	VarianceValue *decimal.Decimal    `gorm:"type:decimal(20,6)" json:"variance_value"`
	ActualQty     *int                `json:"actual_qty"`
	Description   string              `gorm:"type:text" json:"description"`
	Status        DiscrepancyStatus   `gorm:"type:enum('OPEN', 'RESOLVED');not null;default:OPEN;index" json:"status"`
	CreatedAt     time.Time           `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOpenDiscrepancies returns OPEN discrepancies ordered critical-first,
// oldest-first. Generation order is fixed so reruns walk the same sequence.
// zone narrows the scope to locations in that zone; blank means all.
func GetOpenDiscrepancies(ctx context.Context, zone string) ([]*Discrepancy, error) {
	db := config.GetDB()

	dbCtx := db.WithContext(ctx).Model(&Discrepancy{}).
		Where("status = ?", DiscrepancyStatusOpen)
	if zone != "" {
		dbCtx = dbCtx.Where("location_code IN (SELECT code FROM locations WHERE zone = ?)", zone)
	}

	var discrepancies []*Discrepancy
	err := dbCtx.
		Order("FIELD(severity, 'critical', 'high', 'medium', 'low'), created_at ASC").
		Find(&discrepancies).Error
	if err != nil {
		return nil, err
	}
	return discrepancies, nil
}
