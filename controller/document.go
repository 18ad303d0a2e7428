package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/logic"
)

// DocumentController handles HTTP requests for documents. Read-only: upload
// and processing belong to the ingestion service.
type DocumentController struct {
	docLogic *logic.DocumentLogic
}

func NewDocumentController(docLogic *logic.DocumentLogic) *DocumentController {
	return &DocumentController{docLogic: docLogic}
}

// GetDocuments handles GET /documents
func (c *DocumentController) GetDocuments(ctx *gin.Context) {
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}
	page, limit := pagination(ctx, 10)

	docs, err := c.docLogic.ListDocuments(userID, page, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"documents": docs,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
			},
		},
	})
}

// GetDocument handles GET /documents/:id
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	docID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid document ID"})
		return
	}
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}

	doc, err := c.docLogic.GetDocument(docID, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"document": doc},
	})
}
