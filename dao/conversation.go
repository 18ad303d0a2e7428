package dao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation with its document references
func (d *ConversationDAO) CreateConversation(userID uuid.UUID, title string, docs []models.Document) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Documents: docs,
		IsActive:  true,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetActiveConversation retrieves an active conversation scoped to its owner,
// with document references loaded
func (d *ConversationDAO) GetActiveConversation(id, userID uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Preload("Documents").
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetConversation retrieves a conversation scoped to its owner regardless of
// active state. Feedback on messages of a soft-deleted conversation is allowed.
func (d *ConversationDAO) GetConversation(id, userID uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// ListConversations retrieves a user's active conversations, most recently
// updated first
func (d *ConversationDAO) ListConversations(userID uuid.UUID, page, limit int) ([]models.Conversation, error) {
	var convos []models.Conversation
	if err := d.db.Preload("Documents").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&convos).Error; err != nil {
		return nil, err
	}
	return convos, nil
}

// UpdateTitle renames a conversation
func (d *ConversationDAO) UpdateTitle(id, userID uuid.UUID, title string) error {
	return d.db.Model(&models.Conversation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"title": title, "updated_at": time.Now()}).Error
}

// ReplaceDocuments swaps the conversation's document references
func (d *ConversationDAO) ReplaceDocuments(convo *models.Conversation, docs []models.Document) error {
	return d.db.Model(convo).Association("Documents").Replace(docs)
}

// SoftDelete marks a conversation inactive. Messages are kept.
func (d *ConversationDAO) SoftDelete(id, userID uuid.UUID) error {
	res := d.db.Model(&models.Conversation{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementMessageCount bumps the conversation's message counter.
// Single-statement increment so concurrent asks cannot lose updates.
func (d *ConversationDAO) IncrementMessageCount(id uuid.UUID) error {
	return d.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message_count": gorm.Expr("message_count + ?", 1),
			"updated_at":    time.Now(),
		}).Error
}
