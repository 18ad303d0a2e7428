package models

import (
	"time"

	"github.com/google/uuid"
)

// APIUsage tracks a user's question counters. DailyQuestions is reset to 0
// the first time it is checked on a calendar day after LastReset's day.
type APIUsage struct {
	DailyQuestions int       `gorm:"default:0" json:"daily_questions"`
	TotalQuestions int       `gorm:"default:0" json:"total_questions"`
	LastReset      time.Time `json:"last_reset"`
}

// User represents an account. Registration and login live in the auth
// service; this backend only reads identity and mutates usage counters.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	APIUsage  APIUsage  `gorm:"embedded;embeddedPrefix:usage_" json:"api_usage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
