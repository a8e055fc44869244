package model

import (
	"time"

	"gorm.io/gorm"
)

// Game is a catalog entry: an online game with a server region, timezone and
// daily reset time. Catalog entries are soft-deleted so historical completion
// rows keep a valid reference.
type Game struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:255;not null;index"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Region    string         `json:"region" gorm:"size:50;index"`
	Timezone  string         `json:"timezone" gorm:"size:64;not null;default:UTC"`
	ResetTime string         `json:"reset_time" gorm:"size:5;not null;default:00:00"` // HH:MM, local to Timezone
	Active    bool           `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
