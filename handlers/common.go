package handlers

import (
	"errors"
	"net/http"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/services"
	"github.com/cyphera/delegatable/typeddata"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	queries    db.Querier
	Dispatcher *services.DispatcherService
	Revocation *services.RevocationService
	Publisher  *services.PublisherService
	Registry   *services.RegistryService
	logger     *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	DB         db.Querier
	Dispatcher *services.DispatcherService
	Revocation *services.RevocationService
	Publisher  *services.PublisherService
	Registry   *services.RegistryService
	Logger     *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Log
	}
	return &CommonServices{
		queries:    config.DB,
		Dispatcher: config.Dispatcher,
		Revocation: config.Revocation,
		Publisher:  config.Publisher,
		Registry:   config.Registry,
		logger:     config.Logger,
	}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError logs the error with its correlation ID and writes the standard
// error envelope.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := ""
	if id, exists := c.Get("correlationID"); exists {
		correlationID, _ = id.(string)
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	)

	c.JSON(statusCode, ErrorResponse{Error: message})
}

func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// statusForDispatchError maps the engine's error taxonomy onto HTTP status
// codes. Everything authorization-shaped is 403; malformed payloads are 400;
// a stale nonce is a 409 the relayer resolves by resubmitting with the next
// one; a target failure is a 422 because the request itself was well-formed.
func statusForDispatchError(err error) int {
	var encErr *typeddata.EncodingError
	var cavErr *caveats.CaveatError
	var targetErr *services.TargetExecutionError
	switch {
	case errors.As(err, &encErr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrChainTooLong):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrReplayRejected):
		return http.StatusConflict
	case errors.As(err, &cavErr),
		errors.Is(err, services.ErrRevocationUnauthorized),
		errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.As(err, &targetErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
