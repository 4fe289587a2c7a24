package models

import "time"

// Investigation links an operator to a discrepancy they were involved in.
// Joined against adjustment snapshots to compute training flags.
type Investigation struct {
	ID            int       `gorm:"primary_key" json:"id"`
	UserId        int       `gorm:"index;not null" json:"user_id"`
	DiscrepancyId string    `gorm:"size:36;index;not null" json:"discrepancy_id"`
	Findings      string    `gorm:"type:text" json:"findings"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
