package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// respondWidgetError writes the widget wire error shape: a single "error"
// field carrying the stable reason code when one exists, the human
// message otherwise. Unknown errors never leak details to the embed.
func respondWidgetError(c *gin.Context, log logger.Interface, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		log.Errorw("unhandled error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	message := appErr.Message
	if appErr.Reason != "" {
		message = appErr.Reason
	}
	c.JSON(appErr.Code, gin.H{"error": message})
}
