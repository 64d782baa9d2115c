package ledger

import (
	"context"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/stretchr/testify/mock"
)

// mockAddressRepository is a testify mock of ledger.AddressRepository
type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) FindByAddress(ctx context.Context, address string) (*ledger.Address, error) {
	args := m.Called(ctx, address)
	if addr, ok := args.Get(0).(*ledger.Address); ok {
		return addr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAddressRepository) FindOrCreate(ctx context.Context, address string) (*ledger.Address, error) {
	args := m.Called(ctx, address)
	if addr, ok := args.Get(0).(*ledger.Address); ok {
		return addr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAddressRepository) Create(ctx context.Context, address string) (*ledger.Address, error) {
	args := m.Called(ctx, address)
	if addr, ok := args.Get(0).(*ledger.Address); ok {
		return addr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAddressRepository) Delete(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) ApplyDelta(ctx context.Context, address string, delta int64) error {
	args := m.Called(ctx, address, delta)
	return args.Error(0)
}

func (m *mockAddressRepository) LockForTransfer(ctx context.Context, addresses ...string) error {
	args := m.Called(ctx, addresses)
	return args.Error(0)
}

// ForEachEligible replays the configured rows through fn. Configure with
// Return([]*ledger.Address{...}, nil).
func (m *mockAddressRepository) ForEachEligible(ctx context.Context, minBalance int64, exclude string, fn func(*ledger.Address) error) error {
	args := m.Called(ctx, minBalance, exclude)
	if rows, ok := args.Get(0).([]*ledger.Address); ok {
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

// mockTransferRepository is a testify mock of ledger.TransferRepository
type mockTransferRepository struct {
	mock.Mock
}

func (m *mockTransferRepository) Append(ctx context.Context, transfer *ledger.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *mockTransferRepository) FindByAddress(ctx context.Context, address string) ([]ledger.Transfer, error) {
	args := m.Called(ctx, address)
	if transfers, ok := args.Get(0).([]ledger.Transfer); ok {
		return transfers, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubUnitOfWork hands the callback a fixed repository bundle without any
// real transaction.
type stubUnitOfWork struct {
	repos ledger.Repositories
	err   error
}

func (u *stubUnitOfWork) Execute(ctx context.Context, fn func(ledger.Repositories) error) error {
	if u.err != nil {
		return u.err
	}
	return fn(u.repos)
}

// newTestBundle wires fresh mocks into a stub unit of work
func newTestBundle() (*mockAddressRepository, *mockTransferRepository, *stubUnitOfWork) {
	addresses := new(mockAddressRepository)
	transfers := new(mockTransferRepository)
	uow := &stubUnitOfWork{
		repos: ledger.Repositories{
			Addresses: addresses,
			Transfers: transfers,
		},
	}
	return addresses, transfers, uow
}
