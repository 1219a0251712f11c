package handlers

import (
	"net/http"

	"github.com/cyphera/delegatable/types/api/requests"
	"github.com/cyphera/delegatable/types/api/responses"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// RevocationHandler handles delegation and authority revocation state
type RevocationHandler struct {
	common *CommonServices
}

// NewRevocationHandler creates a new RevocationHandler instance
func NewRevocationHandler(common *CommonServices) *RevocationHandler {
	return &RevocationHandler{common: common}
}

// RevokeDelegation godoc
// @Summary Revoke a single delegation
// @Description Marks one delegation revoked, given a revocation intent signed by the original delegator
// @Tags delegations
// @Accept json
// @Produce json
// @Param request body requests.RevokeDelegationRequest true "Signed delegation and revocation intent"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /delegations/revoke [post]
func (h *RevocationHandler) RevokeDelegation(c *gin.Context) {
	var req requests.RevokeDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.common.Revocation.RevokeDelegation(c.Request.Context(), req.SignedDelegation, req.SignedIntent); err != nil {
		sendError(c, statusForDispatchError(err), err.Error(), err)
		return
	}

	sendSuccessMessage(c, http.StatusOK, "delegation revoked")
}

// GetDelegationRevoked godoc
// @Summary Check whether a delegation is revoked
// @Tags delegations
// @Produce json
// @Param hash path string true "Delegation hash"
// @Success 200 {object} responses.RevokedResponse
// @Failure 400 {object} ErrorResponse
// @Router /delegations/{hash}/revoked [get]
func (h *RevocationHandler) GetDelegationRevoked(c *gin.Context) {
	hash := c.Param("hash")
	if !isHexHash(hash) {
		sendError(c, http.StatusBadRequest, "Invalid delegation hash format", nil)
		return
	}

	revoked, err := h.common.Revocation.IsDelegationRevoked(c.Request.Context(), common.HexToHash(hash))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to check delegation revocation", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.RevokedResponse{Revoked: revoked})
}

// GetAuthorityRevoked godoc
// @Summary Check whether an authority's delegation rights are revoked
// @Tags authorities
// @Produce json
// @Param address path string true "Authority address"
// @Success 200 {object} responses.RevokedResponse
// @Failure 400 {object} ErrorResponse
// @Router /authorities/{address}/revoked [get]
func (h *RevocationHandler) GetAuthorityRevoked(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		sendError(c, http.StatusBadRequest, "Invalid address format", nil)
		return
	}

	revoked, err := h.common.Revocation.IsAuthorityRevoked(c.Request.Context(), common.HexToAddress(address))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to check authority revocation", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.RevokedResponse{Revoked: revoked})
}

// isHexHash reports whether s is a 32-byte 0x-prefixed hex string.
func isHexHash(s string) bool {
	if len(s) != 66 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for _, c := range s[2:] {
		if !(('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')) {
			return false
		}
	}
	return true
}
