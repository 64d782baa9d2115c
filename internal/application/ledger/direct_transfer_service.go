package ledger

import (
	"context"
	"errors"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
)

// DirectTransferService handles caller-initiated transfers. It owns the
// collaborator policy around the engine: required-field checks, the
// Bitcorn to Cornlet conversion, and find-or-create of the recipient.
// The engine itself never provisions addresses.
type DirectTransferService struct {
	addresses ledger.AddressRepository
	engine    *TransferEngine
}

// NewDirectTransferService creates a new DirectTransferService
func NewDirectTransferService(addresses ledger.AddressRepository, engine *TransferEngine) *DirectTransferService {
	return &DirectTransferService{
		addresses: addresses,
		engine:    engine,
	}
}

// Submit validates and executes a transfer request. amountRaw is a
// decimal Bitcorn amount as supplied by the caller. Checks run in order:
// required fields, amount validity, sender existence, then the engine's
// own balance check.
func (s *DirectTransferService) Submit(ctx context.Context, fromRaw, toRaw, amountRaw string) (*ledger.Transfer, error) {
	if amountRaw == "" {
		return nil, ledger.ErrAmountRequired
	}
	from := ledger.NormalizeAddress(fromRaw)
	if from == "" {
		return nil, ledger.ErrFromRequired
	}
	to := ledger.NormalizeAddress(toRaw)
	if to == "" {
		return nil, ledger.ErrToRequired
	}

	amount, err := ledger.ParseBitcornAmount(amountRaw)
	if err != nil {
		return nil, err
	}

	if _, err := s.addresses.FindByAddress(ctx, from); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.ErrSenderNotFound
		}
		return nil, err
	}

	// Recipients are provisioned on first mention; onboarding may still
	// run for them later and will see the existing row.
	if _, err := s.addresses.FindOrCreate(ctx, to); err != nil {
		return nil, err
	}

	return s.engine.Transfer(ctx, from, to, amount)
}
