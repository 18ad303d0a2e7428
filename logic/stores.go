package logic

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/models"
	"github.com/abhinay-x/studymate-sub001/pkg"
)

// Store interfaces consumed by the logic layer. The dao package provides the
// gorm-backed implementations; tests substitute in-memory fakes.

type UserStore interface {
	GetUserByID(id uuid.UUID) (*models.User, error)
	SaveUsage(user *models.User) error
	IncrementQuestionCounts(id uuid.UUID) error
}

type ConversationStore interface {
	CreateConversation(userID uuid.UUID, title string, docs []models.Document) (*models.Conversation, error)
	GetActiveConversation(id, userID uuid.UUID) (*models.Conversation, error)
	GetConversation(id, userID uuid.UUID) (*models.Conversation, error)
	ListConversations(userID uuid.UUID, page, limit int) ([]models.Conversation, error)
	UpdateTitle(id, userID uuid.UUID, title string) error
	ReplaceDocuments(convo *models.Conversation, docs []models.Document) error
	SoftDelete(id, userID uuid.UUID) error
	IncrementMessageCount(id uuid.UUID) error
}

type MessageStore interface {
	CreateMessage(msg *models.Message) error
	GetMessage(id, conversationID uuid.UUID) (*models.Message, error)
	ListMessages(conversationID uuid.UUID, page, limit int) ([]models.Message, error)
	SaveFeedback(msg *models.Message) error
}

type DocumentStore interface {
	GetDocumentsByIDs(ids []uuid.UUID, userID uuid.UUID) ([]models.Document, error)
	GetUserDocuments(userID uuid.UUID, page, limit int) ([]models.Document, error)
	GetDocumentByID(id, userID uuid.UUID) (*models.Document, error)
	SearchChunks(documentIDs []uuid.UUID, query string, limit int) ([]models.DocumentChunk, error)
}

// Generator is the external text-generation model
type Generator interface {
	Generate(ctx context.Context, prompt string, opts pkg.GenerateOptions) (*pkg.GenerationResult, error)
	Model() string
}
