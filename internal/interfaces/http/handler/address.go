package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ledgerapp "github.com/bitcorn/backend/internal/application/ledger"
	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddressQueries serves read-only address views
type AddressQueries interface {
	GetAddress(ctx context.Context, raw string) (*ledgerapp.AddressView, error)
}

// AddressOnboarder creates and seeds new addresses
type AddressOnboarder interface {
	Onboard(ctx context.Context, raw string) (*ledgerapp.AddressView, error)
}

// AddressHandler handles address endpoints
type AddressHandler struct {
	queries    AddressQueries
	onboarding AddressOnboarder
	logger     *zap.Logger
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(queries AddressQueries, onboarding AddressOnboarder, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		queries:    queries,
		onboarding: onboarding,
		logger:     logger,
	}
}

// RegisterRoutes registers address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/addresses/:address", h.Get)
	rg.POST("/addresses", h.Create)
}

// Get returns the balance and transfer history for an address
func (h *AddressHandler) Get(c *gin.Context) {
	view, err := h.queries.GetAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		handleLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type createAddressRequest struct {
	Address string `json:"address"`
}

// Create onboards a new address with the initial grant
func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "address is required")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		respondError(c, http.StatusBadRequest, "address is required")
		return
	}

	view, err := h.onboarding.Onboard(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			id := ledger.NormalizeAddress(req.Address)
			respondError(c, http.StatusConflict,
				fmt.Sprintf("User: %s already exists, please sign in instead", id))
			return
		}
		handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}
