package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyCompletion records that a user finished a game's dailies on a given
// day. The day is stored as "YYYY-MM-DD" in the user's timezone, and the
// (user, game, day) triple is unique so completion is idempotent.
type DailyCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_completion"`
	GameID      uint      `json:"game_id" gorm:"not null;uniqueIndex:idx_completion"`
	CompletedOn string    `json:"completed_on" gorm:"size:10;not null;uniqueIndex:idx_completion"`
	User        *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Game        *Game     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}
