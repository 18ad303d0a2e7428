package logic

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/logger"
	"github.com/abhinay-x/studymate-sub001/models"
)

const maxTitleChars = 200

// ConversationLogic handles conversation-related business logic
type ConversationLogic struct {
	convos   ConversationStore
	docs     DocumentStore
	messages MessageStore
	log      *logger.Logger
}

func NewConversationLogic(convos ConversationStore, docs DocumentStore, messages MessageStore, log *logger.Logger) *ConversationLogic {
	return &ConversationLogic{
		convos:   convos,
		docs:     docs,
		messages: messages,
		log:      log.With("logic", "conversation"),
	}
}

// resolveOwnedDocuments loads the referenced documents and rejects the set
// if any of them is missing or owned by someone else.
func (l *ConversationLogic) resolveOwnedDocuments(userID uuid.UUID, documentIDs []uuid.UUID) ([]models.Document, error) {
	docs, err := l.docs.GetDocumentsByIDs(documentIDs, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load documents", Err: err}
	}
	if len(docs) != len(documentIDs) {
		return nil, &ValidationError{Message: "one or more documents not found or access denied"}
	}
	return docs, nil
}

// CreateConversation creates a conversation over a set of owned documents
func (l *ConversationLogic) CreateConversation(userID uuid.UUID, title string, documentIDs []uuid.UUID) (*models.Conversation, error) {
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if len(title) > maxTitleChars {
		return nil, &ValidationError{Message: "title cannot exceed 200 characters"}
	}

	docs, err := l.resolveOwnedDocuments(userID, documentIDs)
	if err != nil {
		return nil, err
	}

	convo, err := l.convos.CreateConversation(userID, title, docs)
	if err != nil {
		return nil, &PersistenceError{Op: "create conversation", Err: err}
	}
	l.log.Info("conversation created", "conversation_id", convo.ID, "documents", len(docs))
	return convo, nil
}

// ListConversations retrieves a user's active conversations
func (l *ConversationLogic) ListConversations(userID uuid.UUID, page, limit int) ([]models.Conversation, error) {
	convos, err := l.convos.ListConversations(userID, page, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list conversations", Err: err}
	}
	return convos, nil
}

// GetConversationWithMessages retrieves one conversation and its messages
func (l *ConversationLogic) GetConversationWithMessages(id, userID uuid.UUID, page, limit int) (*models.Conversation, []models.Message, error) {
	convo, err := l.convos.GetActiveConversation(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Resource: "conversation"}
		}
		return nil, nil, &PersistenceError{Op: "load conversation", Err: err}
	}
	messages, err := l.messages.ListMessages(convo.ID, page, limit)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "list messages", Err: err}
	}
	return convo, messages, nil
}

// UpdateConversation renames a conversation and/or swaps its documents
func (l *ConversationLogic) UpdateConversation(id, userID uuid.UUID, title *string, documentIDs []uuid.UUID) (*models.Conversation, error) {
	convo, err := l.convos.GetActiveConversation(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conversation"}
		}
		return nil, &PersistenceError{Op: "load conversation", Err: err}
	}

	if title != nil {
		if *title == "" || len(*title) > maxTitleChars {
			return nil, &ValidationError{Message: "title must be between 1 and 200 characters"}
		}
		if err := l.convos.UpdateTitle(id, userID, *title); err != nil {
			return nil, &PersistenceError{Op: "update title", Err: err}
		}
		convo.Title = *title
	}

	if documentIDs != nil {
		docs, err := l.resolveOwnedDocuments(userID, documentIDs)
		if err != nil {
			return nil, err
		}
		if err := l.convos.ReplaceDocuments(convo, docs); err != nil {
			return nil, &PersistenceError{Op: "replace documents", Err: err}
		}
		convo.Documents = docs
	}

	return convo, nil
}

// DeleteConversation soft-deletes a conversation. Its messages stay.
func (l *ConversationLogic) DeleteConversation(id, userID uuid.UUID) error {
	if err := l.convos.SoftDelete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "conversation"}
		}
		return &PersistenceError{Op: "delete conversation", Err: err}
	}
	l.log.Info("conversation deleted", "conversation_id", id)
	return nil
}
