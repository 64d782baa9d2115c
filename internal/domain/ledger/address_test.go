package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase unchanged", "alice", "alice"},
		{"uppercase folded", "ALICE", "alice"},
		{"mixed case folded", "AlIcE", "alice"},
		{"whitespace trimmed", "  alice  ", "alice"},
		{"hex address", "0xABCdef", "0xabcdef"},
		{"blank", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAddress(tt.input))
		})
	}
}

func TestNewAddress(t *testing.T) {
	addr := NewAddress("  BOB  ")

	assert.Equal(t, "bob", addr.Address)
	assert.Equal(t, int64(0), addr.CornletBalance)
	assert.False(t, addr.CreatedAt.IsZero())
	assert.Equal(t, addr.CreatedAt, addr.UpdatedAt)
}

func TestAddressBitcornBalance(t *testing.T) {
	addr := &Address{Address: "alice", CornletBalance: 2_500_000}
	assert.Equal(t, 2.5, addr.BitcornBalance())

	addr.CornletBalance = 1
	assert.Equal(t, 0.000001, addr.BitcornBalance())

	addr.CornletBalance = 0
	assert.Equal(t, 0.0, addr.BitcornBalance())
}

func TestLedgerConstants(t *testing.T) {
	assert.Equal(t, int64(1_000_000), CornletsPerBitcorn)
	assert.Equal(t, int64(100_000_000), OnboardGrantCornlets)
	assert.Equal(t, int64(25_000_000), StakeRewardCornlets)
	assert.Equal(t, int64(10_000_000), StakeMinBalanceCornlets)
	assert.Equal(t, StakeRewardCornlets, SeedReserveCornlets)
}
