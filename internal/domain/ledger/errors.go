package ledger

import "github.com/bitcorn/backend/internal/domain/shared"

// Ledger-specific domain errors. These extend the shared taxonomy with the
// conditions the transfer engine, onboarding, and the stake reward batch
// distinguish between.
var (
	ErrInvalidAddress    = shared.NewDomainError("INVALID_ADDRESS", "Invalid address")
	ErrSenderNotFound    = shared.NewDomainError("SENDER_NOT_FOUND", "Sender address not found")
	ErrRecipientNotFound = shared.NewDomainError("RECIPIENT_NOT_FOUND", "Recipient address not found")
	ErrSeedUnavailable   = shared.NewDomainError("SEED_UNAVAILABLE", "Could not find seed address. Unable to create a new user at this time.")
	ErrAmountRequired    = shared.NewDomainError("AMOUNT_REQUIRED", "Amount is required")
	ErrFromRequired      = shared.NewDomainError("FROM_ADDRESS_REQUIRED", "fromAddress is required")
	ErrToRequired        = shared.NewDomainError("TO_ADDRESS_REQUIRED", "toAddress is required")
	ErrAmountNotPositive = shared.NewDomainError("AMOUNT_NOT_POSITIVE", "Amount should be greater than 0")
	ErrExcessPrecision   = shared.NewDomainError("EXCESS_PRECISION", "Amount can have no more than 6 digits to the right of the decimal point")
)
