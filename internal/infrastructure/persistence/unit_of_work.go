package persistence

import (
	"context"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormUnitOfWork implements ledger.UnitOfWork on top of a GORM
// transaction. Repositories handed to the callback are scoped to the
// transaction, so everything inside either commits together or rolls back
// together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ledger.Repositories{
			Addresses: NewGormAddressRepository(tx),
			Transfers: NewGormTransferRepository(tx),
		})
	})
}

// Ensure GormUnitOfWork implements ledger.UnitOfWork
var _ ledger.UnitOfWork = (*GormUnitOfWork)(nil)
