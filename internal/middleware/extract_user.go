package middleware

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractUserID runs after AuthMiddleware. Services parse the tenant and actor
// ids as UUIDs, so malformed claims stop here instead of deeper down.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User tidak terautentikasi", nil)
			c.Abort()
			return
		}

		for _, key := range []string{"user_id", "company_id", "employee_id"} {
			if _, err := uuid.Parse(c.GetString(key)); err != nil {
				response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Format "+key+" tidak valid", nil)
				c.Abort()
				return
			}
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
