package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// GetUserByID retrieves a user by ID
func (d *UserDAO) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUsage persists the user's usage counters. Used for the day-boundary
// reset, which must be durable even when the request is denied.
func (d *UserDAO) SaveUsage(user *models.User) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"usage_daily_questions": user.APIUsage.DailyQuestions,
			"usage_last_reset":      user.APIUsage.LastReset,
		}).Error
}

// IncrementQuestionCounts bumps both daily and total question counters.
// Single-statement increment so concurrent requests cannot lose updates.
func (d *UserDAO) IncrementQuestionCounts(id uuid.UUID) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_daily_questions": gorm.Expr("usage_daily_questions + ?", 1),
			"usage_total_questions": gorm.Expr("usage_total_questions + ?", 1),
		}).Error
}
