package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderSetting configures a pre-reset reminder for a tracked game.
type ReminderSetting struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_game_reminder"`
	GameID        uint      `json:"game_id" gorm:"not null;uniqueIndex:idx_user_game_reminder"`
	Enabled       bool      `json:"enabled" gorm:"default:true"`
	MinutesBefore int       `json:"minutes_before" gorm:"default:60"`
	User          *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Game          *Game     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
