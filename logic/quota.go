package logic

import (
	"time"

	"github.com/abhinay-x/studymate-sub001/models"
)

// QuotaLedger tracks per-user daily question counts against a configured
// ceiling. The daily counter resets the first time it is checked on a new
// calendar day.
type QuotaLedger struct {
	users      UserStore
	dailyLimit int
}

func NewQuotaLedger(users UserStore, dailyLimit int) *QuotaLedger {
	if dailyLimit <= 0 {
		dailyLimit = 50
	}
	return &QuotaLedger{users: users, dailyLimit: dailyLimit}
}

// CanAsk reports whether the user is under the daily limit. The day-boundary
// reset is applied and persisted here, even when the request is then denied,
// so the stored counters always reflect the current day.
func (q *QuotaLedger) CanAsk(user *models.User) (bool, error) {
	now := time.Now()
	if !sameCalendarDay(now, user.APIUsage.LastReset) {
		user.APIUsage.DailyQuestions = 0
		user.APIUsage.LastReset = now
		if err := q.users.SaveUsage(user); err != nil {
			return false, err
		}
	}
	return user.APIUsage.DailyQuestions < q.dailyLimit, nil
}

// RecordAsk charges one question to the user. The store update is a
// single-statement increment; the in-memory copy is mirrored so the caller
// can derive the remaining allowance without a reload.
func (q *QuotaLedger) RecordAsk(user *models.User) error {
	if err := q.users.IncrementQuestionCounts(user.ID); err != nil {
		return err
	}
	user.APIUsage.DailyQuestions++
	user.APIUsage.TotalQuestions++
	return nil
}

// Remaining returns how many questions the user may still ask today
func (q *QuotaLedger) Remaining(user *models.User) int {
	remaining := q.dailyLimit - user.APIUsage.DailyQuestions
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DailyLimit returns the configured ceiling
func (q *QuotaLedger) DailyLimit() int {
	return q.dailyLimit
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
