package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/logic"
)

// extractUserID reads the verified user ID placed in the context by the auth
// middleware
func extractUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not found in context"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Invalid user in context"})
		return uuid.Nil, false
	}
	return userID, true
}

func pagination(ctx *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// writeError maps typed logic failures to distinct HTTP outcomes
func writeError(ctx *gin.Context, err error) {
	var (
		quotaErr       *logic.QuotaExceededError
		notFoundErr    *logic.NotFoundError
		validationErr  *logic.ValidationError
		generationErr  *logic.GenerationFailedError
		persistenceErr *logic.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"message": validationErr.Message,
		})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   notFoundErr.Error(),
		})
	case errors.As(err, &quotaErr):
		ctx.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "Daily limit exceeded",
			"message": quotaErr.Error(),
		})
	case errors.As(err, &generationErr):
		body := gin.H{
			"success": false,
			"error":   "AI response failed",
			"message": "Failed to generate response, please try again later",
			"kind":    generationErr.Cause.Kind,
		}
		if generationErr.Cause.RetryAfter > 0 {
			body["retry_after"] = int(generationErr.Cause.RetryAfter.Seconds())
		}
		ctx.JSON(http.StatusBadGateway, body)
	case errors.As(err, &persistenceErr):
		body := gin.H{
			"success": false,
			"error":   "Storage failure",
			"message": "The request could not be recorded",
		}
		// A computed answer is never dropped, even when it could not be
		// durably written.
		if persistenceErr.Answer != "" {
			body["answer"] = persistenceErr.Answer
			body["message"] = "The answer was generated but could not be recorded"
		}
		ctx.JSON(http.StatusInternalServerError, body)
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	}
}
