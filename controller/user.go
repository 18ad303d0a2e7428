package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/studymate-sub001/logic"
)

// UserController handles HTTP requests for the current user
type UserController struct {
	userLogic *logic.UserLogic
}

func NewUserController(userLogic *logic.UserLogic) *UserController {
	return &UserController{userLogic: userLogic}
}

// GetUser handles GET /user
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := extractUserID(ctx)
	if !ok {
		return
	}

	user, remaining, err := c.userLogic.GetUser(userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":                user,
			"remaining_questions": remaining,
		},
	})
}
