package models

import (
	"time"

	"github.com/google/uuid"
)

// Document processing status values
const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusFailed     = "failed"
)

// Document represents an uploaded file. Upload, storage and chunking are
// handled by the ingestion service; FileID points at the stored blob.
type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	FileID       string    `gorm:"not null" json:"file_id"`
	Status       string    `gorm:"default:processing;index" json:"status"`
	ChunkCount   int       `gorm:"default:0" json:"chunk_count"`
	UploadDate   time.Time `json:"upload_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
