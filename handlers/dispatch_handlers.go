package handlers

import (
	"net/http"

	"github.com/cyphera/delegatable/types/api/requests"
	"github.com/cyphera/delegatable/types/api/responses"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DispatchHandler handles invocation submission
type DispatchHandler struct {
	common *CommonServices
}

// NewDispatchHandler creates a new DispatchHandler instance
func NewDispatchHandler(common *CommonServices) *DispatchHandler {
	return &DispatchHandler{common: common}
}

// DispatchInvocations godoc
// @Summary Dispatch a signed invocation batch
// @Description Validates the signed invocation batch, resolves each delegation chain to its root authority, and executes every transaction atomically
// @Tags invocations
// @Accept json
// @Produce json
// @Param request body requests.DispatchRequest true "Signed invocations"
// @Success 200 {object} responses.DispatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invocations [post]
func (h *DispatchHandler) DispatchInvocations(c *gin.Context) {
	var req requests.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.common.logger.Debug("Received invocation batch",
		zap.Int("batch_size", len(req.SignedInvocations.Invocations.Batch)),
		zap.String("dump", spew.Sdump(req.SignedInvocations.Invocations.ReplayProtection)),
	)

	results, err := h.common.Dispatcher.Dispatch(c.Request.Context(), req.SignedInvocations)
	if err != nil {
		sendError(c, statusForDispatchError(err), err.Error(), err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.DispatchResponse{Results: results})
}
