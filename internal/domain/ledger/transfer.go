package ledger

import "time"

// Transfer is an immutable record of value moved between two addresses.
// Records are created exactly once per successful transfer and never
// updated or deleted afterwards.
type Transfer struct {
	ID            int64
	FromAddress   string
	ToAddress     string
	CornletAmount int64
	CreatedAt     time.Time
}

// NewTransfer builds an unsaved transfer record. Endpoints are normalized;
// amount validity is checked by the engine and again by the store.
func NewTransfer(from, to string, amount int64) *Transfer {
	return &Transfer{
		FromAddress:   NormalizeAddress(from),
		ToAddress:     NormalizeAddress(to),
		CornletAmount: amount,
		CreatedAt:     time.Now(),
	}
}

// Validate checks the record-level invariant: a strictly positive amount.
func (t *Transfer) Validate() error {
	if t.CornletAmount <= 0 {
		return ErrAmountNotPositive
	}
	return nil
}

// BitcornAmount returns the transferred amount in Bitcorn units.
func (t *Transfer) BitcornAmount() float64 {
	return CornletsToBitcorn(t.CornletAmount)
}
