package model

import (
	"time"

	"github.com/google/uuid"
)

// Tutor is a registered tutor. Code is the human-shareable identifier
// students use at registration; it is assigned once and never changes.
type Tutor struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Subject        string     `json:"subject"`
	Bio            string     `json:"bio"`
	PasswordHash   string     `json:"-"`
	TelegramChatID *int64     `json:"-"` // nil = no Telegram notifications
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
