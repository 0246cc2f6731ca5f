package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorDetail carries a machine-readable kind plus context (conflicting
// stay, rejected transition) alongside the message.
func JSONErrorDetail(c *gin.Context, code int, kind, message string, detail interface{}) {
	c.JSON(code, gin.H{"success": false, "error": message, "kind": kind, "detail": detail})
}
