package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentChunk is one extracted slice of a document's text. Chunks are
// immutable once written except for a later embedding backfill.
type DocumentChunk struct {
	ID         uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID                    `gorm:"type:uuid;not null;index:idx_chunk_doc_index" json:"document_id"`
	Content    string                       `gorm:"not null" json:"content"`
	ChunkIndex int                          `gorm:"not null;index:idx_chunk_doc_index" json:"chunk_index"`
	PageNumber int                          `gorm:"default:1" json:"page_number"`
	Confidence float64                      `gorm:"default:1.0" json:"confidence"`
	Embedding  datatypes.JSONSlice[float64] `json:"embedding,omitempty"`
	CreatedAt  time.Time                    `json:"created_at"`
}
