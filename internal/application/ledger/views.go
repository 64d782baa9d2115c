package ledger

import (
	"time"

	"github.com/bitcorn/backend/internal/domain/ledger"
)

// TransferView is a single history entry as rendered to API clients.
// Amounts are decimal Bitcorn.
type TransferView struct {
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	ToAddress string    `json:"toAddress"`
}

// AddressView combines an address balance with its transfer history.
type AddressView struct {
	Balance      float64        `json:"balance"`
	Transactions []TransferView `json:"transactions"`
}

// buildAddressView assembles the client-facing view of an address.
func buildAddressView(addr *ledger.Address, transfers []ledger.Transfer) *AddressView {
	views := make([]TransferView, len(transfers))
	for i, t := range transfers {
		views[i] = TransferView{
			Amount:    t.BitcornAmount(),
			Timestamp: t.CreatedAt,
			ToAddress: t.ToAddress,
		}
	}
	return &AddressView{
		Balance:      addr.BitcornBalance(),
		Transactions: views,
	}
}
