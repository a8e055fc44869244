package model

import (
	"time"

	"github.com/google/uuid"
)

// UserGame links a user to a game they track.
type UserGame struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_game"`
	GameID    uint      `json:"game_id" gorm:"not null;uniqueIndex:idx_user_game"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Game      *Game     `json:"game,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
