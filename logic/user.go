package logic

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
)

// UserLogic handles user-related business logic
type UserLogic struct {
	users UserStore
	quota *QuotaLedger
}

func NewUserLogic(users UserStore, quota *QuotaLedger) *UserLogic {
	return &UserLogic{users: users, quota: quota}
}

// GetUser retrieves a user with usage counters normalized to the current
// day, plus the remaining daily allowance.
func (l *UserLogic) GetUser(id uuid.UUID) (*models.User, int, error) {
	user, err := l.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, &NotFoundError{Resource: "user"}
		}
		return nil, 0, &PersistenceError{Op: "load user", Err: err}
	}
	// The check applies and persists the day-boundary reset.
	if _, err := l.quota.CanAsk(user); err != nil {
		return nil, 0, &PersistenceError{Op: "reset daily quota", Err: err}
	}
	return user, l.quota.Remaining(user), nil
}
