package logic

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// DocumentLogic exposes the read-only document surface. Upload, blob storage
// and chunking belong to the ingestion service.
type DocumentLogic struct {
	docs DocumentStore
}

func NewDocumentLogic(docs DocumentStore) *DocumentLogic {
	return &DocumentLogic{docs: docs}
}

// ListDocuments retrieves a user's documents, most recent upload first
func (l *DocumentLogic) ListDocuments(userID uuid.UUID, page, limit int) ([]models.Document, error) {
	docs, err := l.docs.GetUserDocuments(userID, page, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list documents", Err: err}
	}
	return docs, nil
}

// GetDocument retrieves one document scoped to its owner
func (l *DocumentLogic) GetDocument(id, userID uuid.UUID) (*models.Document, error) {
	doc, err := l.docs.GetDocumentByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "document"}
		}
		return nil, &PersistenceError{Op: "load document", Err: err}
	}
	return doc, nil
}
