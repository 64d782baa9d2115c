package ledger

import (
	"context"
	"errors"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AddressOnboardingService creates new addresses and funds them with the
// fixed starting grant from the configured seed address. Onboarding is
// atomic end to end: either the address exists with exactly the grant
// balance and one ledger record, or it does not exist at all.
type AddressOnboardingService struct {
	addresses   ledger.AddressRepository
	transfers   ledger.TransferRepository
	engine      *TransferEngine
	seedAddress string
	logger      *zap.Logger
}

// NewAddressOnboardingService creates a new AddressOnboardingService.
// seedAddress is the configured faucet identifier; it is resolved here at
// construction time rather than read ambiently per call.
func NewAddressOnboardingService(
	addresses ledger.AddressRepository,
	transfers ledger.TransferRepository,
	engine *TransferEngine,
	seedAddress string,
	logger *zap.Logger,
) *AddressOnboardingService {
	return &AddressOnboardingService{
		addresses:   addresses,
		transfers:   transfers,
		engine:      engine,
		seedAddress: ledger.NormalizeAddress(seedAddress),
		logger:      logger,
	}
}

// Onboard registers a new address and grants it the fixed starting
// balance. The seed balance is deliberately not pre-checked here; the
// engine's own insufficient-balance rejection triggers the compensating
// delete of the provisional row, keeping the seed-balance policy in one
// place.
func (s *AddressOnboardingService) Onboard(ctx context.Context, raw string) (*AddressView, error) {
	id := ledger.NormalizeAddress(raw)
	if id == "" {
		return nil, ledger.ErrInvalidAddress
	}

	if _, err := s.addresses.FindByAddress(ctx, id); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.addresses.FindByAddress(ctx, s.seedAddress); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.ErrSeedUnavailable
		}
		return nil, err
	}

	if _, err := s.addresses.Create(ctx, id); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}

	if _, err := s.engine.Transfer(ctx, s.seedAddress, id, ledger.OnboardGrantCornlets); err != nil {
		// Compensate: the provisional row must not survive a failed grant.
		if delErr := s.addresses.Delete(ctx, id); delErr != nil {
			s.logger.Error("Failed to remove provisional address after grant failure",
				zap.String("address", id),
				zap.Error(delErr),
			)
		}
		s.logger.Warn("Onboarding grant failed",
			zap.String("address", id),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Address onboarded",
		zap.String("address", id),
		zap.Int64("grant_cornlets", ledger.OnboardGrantCornlets),
	)

	addr, err := s.addresses.FindByAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.transfers.FindByAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildAddressView(addr, history), nil
}
