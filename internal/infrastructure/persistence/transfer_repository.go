package persistence

import (
	"context"
	"errors"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/bitcorn/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransferRepository implements ledger.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// Append persists a new transfer record and assigns its ID
func (r *GormTransferRepository) Append(ctx context.Context, transfer *ledger.Transfer) error {
	if err := transfer.Validate(); err != nil {
		return err
	}

	model := models.TransferModelFromDomain(transfer)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return shared.ErrNotFound
		}
		if errors.Is(err, gorm.ErrCheckConstraintViolated) {
			return ledger.ErrAmountNotPositive
		}
		return err
	}

	transfer.ID = model.ID
	transfer.CreatedAt = model.CreatedAt
	return nil
}

// FindByAddress returns every record where the address is sender or
// recipient, in creation order.
func (r *GormTransferRepository) FindByAddress(ctx context.Context, address string) ([]ledger.Transfer, error) {
	id := ledger.NormalizeAddress(address)

	var transferModels []models.TransferModel
	if err := r.db.WithContext(ctx).
		Where("from_address = ? OR to_address = ?", id, id).
		Order("id ASC").
		Find(&transferModels).Error; err != nil {
		return nil, err
	}

	transfers := make([]ledger.Transfer, len(transferModels))
	for i, model := range transferModels {
		transfers[i] = *model.ToDomain()
	}
	return transfers, nil
}

// Ensure GormTransferRepository implements ledger.TransferRepository
var _ ledger.TransferRepository = (*GormTransferRepository)(nil)
