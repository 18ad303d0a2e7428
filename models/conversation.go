package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups a user's messages and the documents they are asked
// against. Deletion is soft: IsActive flips to false and messages stay.
type Conversation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_convo_user_updated" json:"user_id"`
	Title        string     `gorm:"not null" json:"title"`
	Documents    []Document `gorm:"many2many:conversation_documents" json:"documents,omitempty"`
	ModelUsed    string     `gorm:"default:huggingface-2b" json:"model_used"`
	MessageCount int        `gorm:"default:0" json:"message_count"`
	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `gorm:"index:idx_convo_user_updated,sort:desc" json:"updated_at"`
}
