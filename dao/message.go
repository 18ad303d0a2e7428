package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// CreateMessage persists a completed question/answer exchange
func (d *MessageDAO) CreateMessage(msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	return d.db.Create(msg).Error
}

// GetMessage retrieves a message scoped to its conversation
func (d *MessageDAO) GetMessage(id, conversationID uuid.UUID) (*models.Message, error) {
	var msg models.Message
	if err := d.db.Where("id = ? AND conversation_id = ?", id, conversationID).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages retrieves a conversation's messages in time order
func (d *MessageDAO) ListMessages(conversationID uuid.UUID, page, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := d.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SaveFeedback updates the feedback fields of a message
func (d *MessageDAO) SaveFeedback(msg *models.Message) error {
	return d.db.Model(&models.Message{}).
		Where("id = ?", msg.ID).
		Updates(map[string]interface{}{
			"feedback_helpful": msg.Feedback.Helpful,
			"feedback_rating":  msg.Feedback.Rating,
			"feedback_comment": msg.Feedback.Comment,
		}).Error
}
