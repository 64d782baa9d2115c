package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAddressBuildsView(t *testing.T) {
	addresses := new(mockAddressRepository)
	transfers := new(mockTransferRepository)
	svc := NewAddressQueryService(addresses, transfers)

	now := time.Now()
	addresses.On("FindByAddress", mock.Anything, "alice").
		Return(&ledger.Address{Address: "alice", CornletBalance: 2_500_000}, nil)
	transfers.On("FindByAddress", mock.Anything, "alice").
		Return([]ledger.Transfer{
			{ID: 1, FromAddress: "seed", ToAddress: "alice", CornletAmount: 2_000_000, CreatedAt: now},
			{ID: 2, FromAddress: "alice", ToAddress: "bob", CornletAmount: 500_000, CreatedAt: now},
		}, nil)

	view, err := svc.GetAddress(context.Background(), " ALICE ")

	require.NoError(t, err)
	assert.Equal(t, 2.5, view.Balance)
	require.Len(t, view.Transactions, 2)
	assert.Equal(t, 2.0, view.Transactions[0].Amount)
	assert.Equal(t, "alice", view.Transactions[0].ToAddress)
	assert.Equal(t, 0.5, view.Transactions[1].Amount)
	assert.Equal(t, "bob", view.Transactions[1].ToAddress)
}

func TestGetAddressNotFound(t *testing.T) {
	addresses := new(mockAddressRepository)
	transfers := new(mockTransferRepository)
	svc := NewAddressQueryService(addresses, transfers)

	addresses.On("FindByAddress", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.GetAddress(context.Background(), "ghost")

	assert.ErrorIs(t, err, shared.ErrNotFound)
	transfers.AssertNotCalled(t, "FindByAddress", mock.Anything, mock.Anything)
}

func TestGetAddressEmptyHistory(t *testing.T) {
	addresses := new(mockAddressRepository)
	transfers := new(mockTransferRepository)
	svc := NewAddressQueryService(addresses, transfers)

	addresses.On("FindByAddress", mock.Anything, "alice").
		Return(&ledger.Address{Address: "alice", CornletBalance: 0}, nil)
	transfers.On("FindByAddress", mock.Anything, "alice").
		Return([]ledger.Transfer{}, nil)

	view, err := svc.GetAddress(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, 0.0, view.Balance)
	assert.NotNil(t, view.Transactions)
	assert.Empty(t, view.Transactions)
}
