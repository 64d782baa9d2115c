package handler

import (
	"errors"
	"net/http"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// errorBody is the error response shape used by every endpoint.
type errorBody struct {
	Error string `json:"error"`
}

// respondError writes an error response with the given status
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorBody{Error: message})
}

// mapLedgerError converts a domain error into an HTTP status and a
// client-facing message.
func mapLedgerError(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrAmountRequired),
		errors.Is(err, ledger.ErrFromRequired),
		errors.Is(err, ledger.ErrToRequired),
		errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrExcessPrecision):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, shared.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "insufficient balance"
	case errors.Is(err, ledger.ErrSenderNotFound),
		errors.Is(err, ledger.ErrRecipientNotFound):
		return http.StatusUnprocessableEntity, "Address not found"
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, "Address not found"
	case errors.Is(err, shared.ErrAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ledger.ErrSeedUnavailable):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, ledger.ErrInvalidAddress):
		return http.StatusBadRequest, "address is required"
	case errors.Is(err, shared.ErrConcurrencyConflict):
		return http.StatusConflict, err.Error()
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusUnprocessableEntity, domainErr.Message
	}
	return http.StatusInternalServerError, "An unexpected error occurred"
}

// handleLedgerError maps a domain error and writes the response
func handleLedgerError(c *gin.Context, err error) {
	status, message := mapLedgerError(err)
	respondError(c, status, message)
}
