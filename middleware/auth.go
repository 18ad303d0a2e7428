package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abhinay-x/studymate-sub001/config"
)

// Auth verifies the Bearer token and puts the verified user ID into the
// request context. Token issuance lives in the auth service; this side only
// checks the signature and extracts the subject.
func Auth(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing bearer token"})
		return
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.GlobalConfig.Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token claims"})
		return
	}
	sub, ok := claims["user_id"].(string)
	if !ok || sub == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user_id not found in token"})
		return
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid user_id in token"})
		return
	}

	ctx.Set("user_id", userID)
	ctx.Next()
}
