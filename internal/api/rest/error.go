package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 422 Unprocessable Entity response
func respondValidationError(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, message, details...)
}

// respondInternalError sends a 500 Internal Server Error response
func respondInternalError(c *gin.Context, err error) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, "Internal server error")
}

// respondDomainError maps domain errors onto HTTP statuses
func respondDomainError(c *gin.Context, err error) {
	var invalidChain *domain.InvalidChainError
	var invalidPair *domain.InvalidPairFormatError
	var resolutionFailed *domain.ResolutionFailedError
	var scam *domain.ScamTokenError
	var noData *domain.NoDataError

	switch {
	case errors.As(err, &invalidChain):
		respondBadRequest(c, "Unsupported blockchain", err.Error())
	case errors.As(err, &invalidPair):
		respondBadRequest(c, "Invalid pair format", err.Error())
	case errors.As(err, &resolutionFailed):
		respondNotFound(c, "Token could not be resolved", err.Error())
	case errors.As(err, &scam):
		respondValidationError(c, "Token failed verification", err.Error())
	case errors.As(err, &noData):
		respondNotFound(c, "No market data for token", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, "Not found")
	default:
		respondInternalError(c, err)
	}
}
