package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the owner-only administrative surface: the root
// publisher set and authority-wide revocation toggles.
type AdminHandler struct {
	common *CommonServices
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(common *CommonServices) *AdminHandler {
	return &AdminHandler{common: common}
}

// AddPublisher godoc
// @Summary Authorize a root publisher
// @Tags admin
// @Produce json
// @Param address path string true "Publisher address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security OwnerKey
// @Router /admin/publishers/{address} [post]
func (h *AdminHandler) AddPublisher(c *gin.Context) {
	address, ok := h.addressParam(c)
	if !ok {
		return
	}
	if err := h.common.Publisher.AddRootPublisher(c.Request.Context(), address); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to add root publisher", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "root publisher added")
}

// RemovePublisher godoc
// @Summary Remove a root publisher
// @Tags admin
// @Produce json
// @Param address path string true "Publisher address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security OwnerKey
// @Router /admin/publishers/{address} [delete]
func (h *AdminHandler) RemovePublisher(c *gin.Context) {
	address, ok := h.addressParam(c)
	if !ok {
		return
	}
	if err := h.common.Publisher.RemoveRootPublisher(c.Request.Context(), address); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to remove root publisher", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "root publisher removed")
}

// RevokeAuthority godoc
// @Summary Revoke an authority's delegation rights
// @Tags admin
// @Produce json
// @Param address path string true "Authority address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security OwnerKey
// @Router /admin/authorities/{address}/revoke [post]
func (h *AdminHandler) RevokeAuthority(c *gin.Context) {
	address, ok := h.addressParam(c)
	if !ok {
		return
	}
	if err := h.common.Revocation.RevokeAuthority(c.Request.Context(), address); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to revoke authority", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "authority revoked")
}

// UnrevokeAuthority godoc
// @Summary Reinstate an authority's delegation rights
// @Tags admin
// @Produce json
// @Param address path string true "Authority address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security OwnerKey
// @Router /admin/authorities/{address}/unrevoke [post]
func (h *AdminHandler) UnrevokeAuthority(c *gin.Context) {
	address, ok := h.addressParam(c)
	if !ok {
		return
	}
	if err := h.common.Revocation.UnrevokeAuthority(c.Request.Context(), address); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to unrevoke authority", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "authority reinstated")
}

func (h *AdminHandler) addressParam(c *gin.Context) (common.Address, bool) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		sendError(c, http.StatusBadRequest, "Invalid address format", nil)
		return common.Address{}, false
	}
	return common.HexToAddress(address), true
}
