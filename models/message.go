package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ModelResponse records how the answer was produced.
type ModelResponse struct {
	Model        string  `gorm:"default:huggingface-2b" json:"model"`
	TokensUsed   int     `gorm:"default:0" json:"tokens_used"`
	ResponseTime int64   `gorm:"default:0" json:"response_time"` // milliseconds
	Temperature  float64 `gorm:"default:0.7" json:"temperature"`
	MaxTokens    int     `gorm:"default:512" json:"max_tokens"`
}

// Feedback is settable once by the user after the message exists.
type Feedback struct {
	Helpful *bool  `json:"helpful"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Message is one question/answer exchange. Question, answer and chunk
// references are immutable; only Feedback may be set afterwards.
type Message struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID   uuid.UUID                   `gorm:"type:uuid;not null;index:idx_msg_convo_time" json:"conversation_id"`
	Question         string                      `gorm:"not null" json:"question"`
	Answer           string                      `gorm:"not null" json:"answer"`
	ReferencedChunks datatypes.JSONSlice[string] `json:"referenced_chunks"`
	Confidence       float64                     `gorm:"default:0.5" json:"confidence"`
	ProcessingTime   int64                       `gorm:"default:0" json:"processing_time"` // milliseconds
	ModelResponse    ModelResponse               `gorm:"embedded;embeddedPrefix:model_" json:"model_response"`
	Feedback         Feedback                    `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	CreatedAt        time.Time                   `gorm:"index:idx_msg_convo_time" json:"created_at"`
}
