package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransferSubmitter accepts a raw transfer request
type TransferSubmitter interface {
	Submit(ctx context.Context, fromRaw, toRaw, amountRaw string) (*ledger.Transfer, error)
}

// TransactionHandler handles transfer endpoints
type TransactionHandler struct {
	transfers TransferSubmitter
	logger    *zap.Logger
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transfers TransferSubmitter, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transfers: transfers,
		logger:    logger,
	}
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transactions", h.Create)
}

// flexAmount accepts either a JSON number or a JSON string, preserving the
// raw text so amount validation can report precision errors exactly.
type flexAmount string

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = flexAmount(s)
		return nil
	}
	*a = flexAmount(trimmed)
	return nil
}

type createTransactionRequest struct {
	FromAddress string     `json:"fromAddress"`
	ToAddress   string     `json:"toAddress"`
	Amount      flexAmount `json:"amount"`
}

type createTransactionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Create records a transfer between two addresses
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.transfers.Submit(c.Request.Context(), req.FromAddress, req.ToAddress, string(req.Amount)); err != nil {
		handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createTransactionResponse{
		Status:  "success",
		Message: "Transaction created successfully",
	})
}
