package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"klippa/internal/application/widget/usecases"
	"klippa/internal/interfaces/http/middleware"
	"klippa/internal/shared/logger"
)

// CouponHandler serves the session-authenticated coupon endpoints.
type CouponHandler struct {
	list   ListAvailableCouponsExecutor
	claim  ClaimCouponExecutor
	logger logger.Interface
}

func NewCouponHandler(
	list ListAvailableCouponsExecutor,
	claim ClaimCouponExecutor,
	logger logger.Interface,
) *CouponHandler {
	return &CouponHandler{
		list:   list,
		claim:  claim,
		logger: logger,
	}
}

// sessionIdentity reads the identity placed in the context by the widget
// session middleware. A missing identity means the route was mounted
// without the middleware, which is a wiring bug, not a client error.
func sessionIdentity(c *gin.Context) (userSID, vendorSID string, ok bool) {
	userSID = c.GetString(middleware.ContextKeySessionUserID)
	vendorSID = c.GetString(middleware.ContextKeySessionVendorID)
	return userSID, vendorSID, userSID != "" && vendorSID != ""
}

// ListAvailable returns the coupon rows visible to the session user. The
// optional vendor query parameter must match the session's vendor; a
// mismatch is rejected rather than silently served from the session.
func (h *CouponHandler) ListAvailable(c *gin.Context) {
	userSID, vendorSID, ok := sessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}

	if requested := c.Query("vendor"); requested != "" && requested != vendorSID {
		h.logger.Warnw("vendor mismatch on availability query",
			"session_vendor", vendorSID, "requested_vendor", requested)
		c.JSON(http.StatusForbidden, gin.H{"error": "vendor mismatch"})
		return
	}

	availability, err := h.list.Execute(c.Request.Context(), usecases.ListAvailableCouponsQuery{
		VendorSID: vendorSID,
		UserSID:   userSID,
	})
	if err != nil {
		respondWidgetError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

type claimRequest struct {
	CouponID string `json:"coupon_id" binding:"required"`
}

// Claim attempts to claim a coupon for the session user.
func (h *CouponHandler) Claim(c *gin.Context) {
	userSID, vendorSID, ok := sessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon_id is required"})
		return
	}

	result, err := h.claim.Execute(c.Request.Context(), usecases.ClaimCouponCommand{
		VendorSID: vendorSID,
		UserSID:   userSID,
		CouponSID: req.CouponID,
	})
	if err != nil {
		respondWidgetError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
