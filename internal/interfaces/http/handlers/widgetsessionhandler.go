package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"klippa/internal/application/widget/usecases"
	"klippa/internal/shared/logger"
)

// WidgetSessionHandler serves the two session-issuing endpoints of the
// widget API. Both return the same session payload on success.
type WidgetSessionHandler struct {
	fromToken  CreateSessionFromTokenExecutor
	fromAPIKey CreateSessionFromAPIKeyExecutor
	logger     logger.Interface
}

func NewWidgetSessionHandler(
	fromToken CreateSessionFromTokenExecutor,
	fromAPIKey CreateSessionFromAPIKeyExecutor,
	logger logger.Interface,
) *WidgetSessionHandler {
	return &WidgetSessionHandler{
		fromToken:  fromToken,
		fromAPIKey: fromAPIKey,
		logger:     logger,
	}
}

type sessionFromTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// SessionFromToken exchanges a partner-signed token for a widget session.
func (h *WidgetSessionHandler) SessionFromToken(c *gin.Context) {
	var req sessionFromTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	session, err := h.fromToken.Execute(c.Request.Context(), usecases.CreateSessionFromTokenCommand{
		Token: req.Token,
	})
	if err != nil {
		respondWidgetError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type widgetSessionRequest struct {
	APIKey    string `json:"api_key" binding:"required"`
	VendorID  string `json:"vendor_id" binding:"required"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
}

// WidgetSession issues a widget session via the pre-shared vendor API key.
func (h *WidgetSessionHandler) WidgetSession(c *gin.Context) {
	var req widgetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key and vendor_id are required"})
		return
	}

	session, err := h.fromAPIKey.Execute(c.Request.Context(), usecases.CreateSessionFromAPIKeyCommand{
		APIKey:         req.APIKey,
		VendorSID:      req.VendorID,
		ExternalUserID: req.UserID,
		ExternalEmail:  req.UserEmail,
	})
	if err != nil {
		respondWidgetError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
