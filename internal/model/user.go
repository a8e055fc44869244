package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailyquest/internal/auth"
)

// User represents an account in the system. The password hash is never
// serialized into responses.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Timezone     string    `json:"timezone" gorm:"size:64;not null;default:UTC"`
	FirstName    *string   `json:"first_name,omitempty" gorm:"size:100"`
	LastName     *string   `json:"last_name,omitempty" gorm:"size:100"`
	Phone        *string   `json:"phone,omitempty" gorm:"size:20"`
	Role         auth.Role `json:"role" gorm:"not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns the ID and default role before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == 0 {
		u.Role = auth.RoleUser
	}
	return nil
}
