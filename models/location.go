package models

import "time"

// Location is a warehouse slot. Zone is the pick-zone grouping used by the
// cycle count list filter.
type Location struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Code      string    `gorm:"size:50;not null;unique" json:"code" binding:"required"`
	Zone      string    `gorm:"size:30;index" json:"zone"`
	Aisle     string    `gorm:"size:30" json:"aisle"`
	IsActive  *bool     `gorm:"not null;default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
