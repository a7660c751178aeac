package utils

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}

	c.JSON(statusCode, body)
}

// ErrorResponse writes the standard failure envelope.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
