package middleware

import (
	"net/http"

	"homeplan/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics into the API error envelope, so a crashing
// simulation answers with the same shape as handler-level failures.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "an unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: msg,
			},
		})
	})
}
