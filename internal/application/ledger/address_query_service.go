package ledger

import (
	"context"

	"github.com/bitcorn/backend/internal/domain/ledger"
)

// AddressQueryService serves read-only address views for the API.
type AddressQueryService struct {
	addresses ledger.AddressRepository
	transfers ledger.TransferRepository
}

// NewAddressQueryService creates a new AddressQueryService
func NewAddressQueryService(addresses ledger.AddressRepository, transfers ledger.TransferRepository) *AddressQueryService {
	return &AddressQueryService{
		addresses: addresses,
		transfers: transfers,
	}
}

// GetAddress returns the view for a single address, or shared.ErrNotFound.
func (s *AddressQueryService) GetAddress(ctx context.Context, raw string) (*AddressView, error) {
	id := ledger.NormalizeAddress(raw)

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
