package ledger

import (
	"context"
	"errors"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TransferEngine is the single writer of ledger state. Every balance
// mutation in the system, whether from the API, onboarding, or the stake
// reward batch, goes through Transfer.
type TransferEngine struct {
	uow    ledger.UnitOfWork
	logger *zap.Logger
}

// NewTransferEngine creates a new TransferEngine
func NewTransferEngine(uow ledger.UnitOfWork, logger *zap.Logger) *TransferEngine {
	return &TransferEngine{
		uow:    uow,
		logger: logger,
	}
}

// Transfer moves amount Cornlets from one address to another as a single
// atomic unit: debit, credit, and the appended ledger record either all
// commit or none do. Preconditions are checked in order before any
// mutation: positive amount, sender exists, recipient exists, sufficient
// balance. The engine never creates addresses; recipient provisioning is
// the caller's policy.
func (e *TransferEngine) Transfer(ctx context.Context, from, to string, amount int64) (*ledger.Transfer, error) {
	from = ledger.NormalizeAddress(from)
	to = ledger.NormalizeAddress(to)

	if amount <= 0 {
		return nil, ledger.ErrAmountNotPositive
	}

	var record *ledger.Transfer
	err := e.uow.Execute(ctx, func(repos ledger.Repositories) error {
		// Lock both endpoint rows for the rest of the transaction so the
		// balance check below cannot interleave with a concurrent
		// check-then-mutate on the same address.
		if err := repos.Addresses.LockForTransfer(ctx, from, to); err != nil {
			return err
		}

		sender, err := repos.Addresses.FindByAddress(ctx, from)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ledger.ErrSenderNotFound
			}
			return err
		}

		if _, err := repos.Addresses.FindByAddress(ctx, to); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ledger.ErrRecipientNotFound
			}
			return err
		}

		if sender.CornletBalance < amount {
			return shared.ErrInsufficientBalance
		}

		if err := repos.Addresses.ApplyDelta(ctx, from, -amount); err != nil {
			return err
		}
		if err := repos.Addresses.ApplyDelta(ctx, to, amount); err != nil {
			return err
		}

		record = ledger.NewTransfer(from, to, amount)
		if err := record.Validate(); err != nil {
			return err
		}
		return repos.Transfers.Append(ctx, record)
	})
	if err != nil {
		e.logger.Debug("Transfer rejected",
			zap.String("from", from),
			zap.String("to", to),
			zap.Int64("cornlet_amount", amount),
			zap.Error(err),
		)
		return nil, err
	}

	e.logger.Info("Transfer completed",
		zap.Int64("transfer_id", record.ID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int64("cornlet_amount", amount),
	)
	return record, nil
}
