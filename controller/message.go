package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/logic"
)

// MessageController handles HTTP requests for questions and feedback
type MessageController struct {
	messageLogic *logic.MessageLogic
}

func NewMessageController(messageLogic *logic.MessageLogic) *MessageController {
	return &MessageController{messageLogic: messageLogic}
}

// AddMessage handles POST /conversations/:id/messages
func (c *MessageController) AddMessage(ctx *gin.Context) {
	type Request struct {
		Question string `json:"question" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation ID"})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}

	result, err := c.messageLogic.Ask(ctx.Request.Context(), convoID, userID, req.Question)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Question answered successfully",
		"data": gin.H{
			"message":             result.Message,
			"processing_time":     result.ProcessingTime,
			"remaining_questions": result.RemainingQuestions,
		},
	})
}

// GetMessages handles GET /conversations/:id/messages
func (c *MessageController) GetMessages(ctx *gin.Context) {
	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation ID"})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}
	page, limit := pagination(ctx, 50)

	messages, err := c.messageLogic.ListMessages(convoID, userID, page, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"messages": messages,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
			},
		},
	})
}

// AddFeedback handles POST /conversations/:id/messages/:messageId/feedback
func (c *MessageController) AddFeedback(ctx *gin.Context) {
	type Request struct {
		Helpful *bool  `json:"helpful" binding:"required"`
		Rating  *int   `json:"rating"`
		Comment string `json:"comment"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation ID"})
		return
	}
	messageID, err := uuid.Parse(ctx.Param("messageId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid message ID"})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}

	msg, err := c.messageLogic.AddFeedback(messageID, convoID, userID, *req.Helpful, req.Rating, req.Comment)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback added successfully",
		"data":    gin.H{"message": msg},
	})
}
