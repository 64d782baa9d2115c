package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	tr := NewTransfer("  ALICE ", "Bob", 500)

	assert.Equal(t, "alice", tr.FromAddress)
	assert.Equal(t, "bob", tr.ToAddress)
	assert.Equal(t, int64(500), tr.CornletAmount)
	assert.False(t, tr.CreatedAt.IsZero())
	assert.Zero(t, tr.ID)
}

func TestTransferValidate(t *testing.T) {
	require.NoError(t, NewTransfer("alice", "bob", 1).Validate())

	assert.ErrorIs(t, NewTransfer("alice", "bob", 0).Validate(), ErrAmountNotPositive)
	assert.ErrorIs(t, NewTransfer("alice", "bob", -5).Validate(), ErrAmountNotPositive)
}

func TestTransferBitcornAmount(t *testing.T) {
	tr := NewTransfer("alice", "bob", 1_500_000)
	assert.Equal(t, 1.5, tr.BitcornAmount())
}
