package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/logic"
)

// ConversationController handles HTTP requests for conversations
type ConversationController struct {
	convoLogic *logic.ConversationLogic
}

func NewConversationController(convoLogic *logic.ConversationLogic) *ConversationController {
	return &ConversationController{convoLogic: convoLogic}
}

func parseDocumentIDs(raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// CreateConversation handles POST /conversations
func (c *ConversationController) CreateConversation(ctx *gin.Context) {
	type Request struct {
		Title       string   `json:"title" binding:"required"`
		DocumentIDs []string `json:"document_ids"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}
	docIDs, ok := parseDocumentIDs(req.DocumentIDs)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document ID"})
		return
	}

	convo, err := c.convoLogic.CreateConversation(userID, req.Title, docIDs)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Conversation created successfully",
		"data":    gin.H{"conversation": convo},
	})
}

// GetConversations handles GET /conversations
func (c *ConversationController) GetConversations(ctx *gin.Context) {
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}
	page, limit := pagination(ctx, 10)

	convos, err := c.convoLogic.ListConversations(userID, page, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"conversations": convos,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
			},
		},
	})
}

// GetConversation handles GET /conversations/:id
func (c *ConversationController) GetConversation(ctx *gin.Context) {
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

	convo, messages, err := c.convoLogic.GetConversationWithMessages(convoID, userID, page, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"conversation": convo,
			"messages":     messages,
		},
	})
}

// UpdateConversation handles PUT /conversations/:id
func (c *ConversationController) UpdateConversation(ctx *gin.Context) {
	type Request struct {
		Title       *string  `json:"title"`
		DocumentIDs []string `json:"document_ids"`
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

	var docIDs []uuid.UUID
	if req.DocumentIDs != nil {
		parsed, ok := parseDocumentIDs(req.DocumentIDs)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document ID"})
			return
		}
		docIDs = parsed
	}

	convo, err := c.convoLogic.UpdateConversation(convoID, userID, req.Title, docIDs)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Conversation updated successfully",
		"data":    gin.H{"conversation": convo},
	})
}

// DeleteConversation handles DELETE /conversations/:id
func (c *ConversationController) DeleteConversation(ctx *gin.Context) {
	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation ID"})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}

	if err := c.convoLogic.DeleteConversation(convoID, userID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Conversation deleted successfully",
	})
}
