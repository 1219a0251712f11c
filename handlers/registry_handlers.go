package handlers

import (
	"math/big"
	"net/http"

	"github.com/cyphera/delegatable/types/api/responses"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

// RegistryHandler handles registry and publisher queries
type RegistryHandler struct {
	common *CommonServices
}

// NewRegistryHandler creates a new RegistryHandler instance
func NewRegistryHandler(common *CommonServices) *RegistryHandler {
	return &RegistryHandler{common: common}
}

// GetMetadata godoc
// @Summary Look up contract method metadata
// @Tags metadata
// @Produce json
// @Param chain_id query string true "Chain ID (decimal)"
// @Param contract query string true "Contract address"
// @Param method query string true "Method selector (0x-prefixed, 4 bytes)"
// @Param language query string true "Language tag (0x-prefixed, 4 bytes)"
// @Success 200 {object} responses.MetadataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /metadata [get]
func (h *RegistryHandler) GetMetadata(c *gin.Context) {
	chainID, ok := new(big.Int).SetString(c.Query("chain_id"), 10)
	if !ok || chainID.Sign() < 0 {
		sendError(c, http.StatusBadRequest, "Invalid chain_id", nil)
		return
	}
	contractParam := c.Query("contract")
	if !common.IsHexAddress(contractParam) {
		sendError(c, http.StatusBadRequest, "Invalid contract address", nil)
		return
	}
	method, ok := fourByteParam(c.Query("method"))
	if !ok {
		sendError(c, http.StatusBadRequest, "Invalid method selector", nil)
		return
	}
	language, ok := fourByteParam(c.Query("language"))
	if !ok {
		sendError(c, http.StatusBadRequest, "Invalid language tag", nil)
		return
	}

	entry, err := h.common.Registry.LookupMetadata(c.Request.Context(), chainID, common.HexToAddress(contractParam), method, language)
	if err != nil {
		sendError(c, http.StatusNotFound, "Metadata not found", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.MetadataResponse{
		ChainID:     entry.ChainID.String(),
		Contract:    entry.Contract.Hex(),
		Method:      hexutil.Encode(entry.Method[:]),
		Language:    hexutil.Encode(entry.Language[:]),
		Description: entry.Description,
		Inputs:      entry.Inputs,
	})
}

// GetPublisher godoc
// @Summary Check root publisher membership
// @Tags publishers
// @Produce json
// @Param address path string true "Publisher address"
// @Success 200 {object} responses.PublisherResponse
// @Failure 400 {object} ErrorResponse
// @Router /publishers/{address} [get]
func (h *RegistryHandler) GetPublisher(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		sendError(c, http.StatusBadRequest, "Invalid address format", nil)
		return
	}

	authorized, err := h.common.Publisher.IsRootPublisher(c.Request.Context(), common.HexToAddress(address))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to check publisher", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.PublisherResponse{
		Address:    common.HexToAddress(address).Hex(),
		Authorized: authorized,
	})
}

// fourByteParam decodes a 0x-prefixed 4-byte hex value.
func fourByteParam(s string) ([4]byte, bool) {
	var out [4]byte
	raw, err := hexutil.Decode(s)
	if err != nil || len(raw) != 4 {
		return out, false
	}
	copy(out[:], raw)
	return out, true
}
