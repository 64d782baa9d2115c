package ledger

import (
	"strings"
	"time"
)

// Ledger unit constants. All balances and amounts are held in Cornlets,
// the smallest indivisible unit. 1 Bitcorn = 1,000,000 Cornlets.
const (
	CornletsPerBitcorn = int64(1_000_000)

	// OnboardGrantCornlets is the fixed grant paid from the seed address
	// to every newly onboarded address (100 Bitcorn).
	OnboardGrantCornlets = int64(100_000_000)

	// StakeRewardCornlets is the fixed reward paid per eligible address
	// by the stake reward batch (25 Bitcorn).
	StakeRewardCornlets = int64(25_000_000)

	// StakeMinBalanceCornlets is the minimum balance an address must hold
	// to receive a stake reward (10 Bitcorn).
	StakeMinBalanceCornlets = int64(10_000_000)

	// SeedReserveCornlets is the minimum seed balance required before a
	// stake reward run starts. Matches a single payout.
	SeedReserveCornlets = StakeRewardCornlets
)

// Address is an account in the ledger. The address string itself is the
// identity; balances are tracked in Cornlets and must never go negative.
type Address struct {
	Address        string
	CornletBalance int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeAddress canonicalizes an address identifier. Every lookup and
// write must go through this so that casing never leaks into the store.
func NormalizeAddress(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NewAddress creates a zero-balance address with a normalized identifier.
func NewAddress(raw string) *Address {
	now := time.Now()
	return &Address{
		Address:        NormalizeAddress(raw),
		CornletBalance: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// BitcornBalance returns the balance in human-facing Bitcorn units.
func (a *Address) BitcornBalance() float64 {
	return CornletsToBitcorn(a.CornletBalance)
}
