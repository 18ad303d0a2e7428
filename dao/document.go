package dao

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// DocumentDAO handles document and chunk database operations
type DocumentDAO struct {
	db *gorm.DB
}

func NewDocumentDAO(db *gorm.DB) *DocumentDAO {
	return &DocumentDAO{db: db}
}

// GetDocumentsByIDs retrieves the given documents scoped to an owner.
// Callers compare the returned count against len(ids) to detect references
// to documents the user does not own.
func (d *DocumentDAO) GetDocumentsByIDs(ids []uuid.UUID, userID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if len(ids) == 0 {
		return docs, nil
	}
	if err := d.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// GetUserDocuments retrieves a user's documents, most recent upload first
func (d *DocumentDAO) GetUserDocuments(userID uuid.UUID, page, limit int) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("user_id = ?", userID).
		Order("upload_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocumentByID retrieves a single document scoped to an owner
func (d *DocumentDAO) GetDocumentByID(id, userID uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// SearchChunks finds chunks of the given documents whose content contains
// the query, ordered by confidence then chunk index for a stable ranking.
// Placeholder for vector similarity search; the ordering contract is what a
// future embedding index has to keep.
func (d *DocumentDAO) SearchChunks(documentIDs []uuid.UUID, query string, limit int) ([]models.DocumentChunk, error) {
	var chunks []models.DocumentChunk
	if len(documentIDs) == 0 {
		return chunks, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"
	if err := d.db.Where("document_id IN ? AND LOWER(content) LIKE ?", documentIDs, pattern).
		Order("confidence DESC, chunk_index ASC").
		Limit(limit).
		Find(&chunks).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}
