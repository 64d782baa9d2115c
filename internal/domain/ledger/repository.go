package ledger

import "context"

// AddressRepository is the durable mapping from normalized address to
// balance. Implementations must normalize identifiers on every lookup and
// write and must never allow a balance below zero.
type AddressRepository interface {
	// FindByAddress returns the address or shared.ErrNotFound.
	FindByAddress(ctx context.Context, address string) (*Address, error)

	// FindOrCreate returns the address, creating it with a zero balance
	// if it does not exist yet.
	FindOrCreate(ctx context.Context, address string) (*Address, error)

	// Create inserts a new zero-balance address. Returns
	// shared.ErrAlreadyExists if the identifier is taken.
	Create(ctx context.Context, address string) (*Address, error)

	// Delete removes an address row. Only used to compensate a failed
	// onboarding grant; established addresses are never deleted.
	Delete(ctx context.Context, address string) error

	// ApplyDelta atomically adjusts a balance by the signed amount. The
	// guard and the mutation are a single statement; a negative result is
	// rejected with shared.ErrInsufficientBalance and nothing changes.
	ApplyDelta(ctx context.Context, address string, delta int64) error

	// LockForTransfer acquires row locks on the given addresses for the
	// remainder of the enclosing unit of work. Locks are taken in
	// lexicographic order so concurrent transfers over overlapping
	// endpoints cannot deadlock.
	LockForTransfer(ctx context.Context, addresses ...string) error

	// ForEachEligible streams every address with balance >= minBalance,
	// excluding the given identifier, in a single forward pass. Iteration
	// stops early if fn returns an error.
	ForEachEligible(ctx context.Context, minBalance int64, exclude string, fn func(*Address) error) error
}

// TransferRepository is the append-only transfer ledger.
type TransferRepository interface {
	// Append persists a new transfer record and fills in its assigned ID.
	// Rejects amounts <= 0.
	Append(ctx context.Context, transfer *Transfer) error

	// FindByAddress returns every record where the address is sender or
	// recipient, in creation order.
	FindByAddress(ctx context.Context, address string) ([]Transfer, error)
}

// Repositories bundles the transaction-scoped repositories handed to a
// unit of work callback.
type Repositories struct {
	Addresses AddressRepository
	Transfers TransferRepository
}

// UnitOfWork executes a function against transaction-scoped repositories.
// Either every mutation made inside fn commits, or none of them do.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
