package models

import (
	"time"

	"github.com/bitcorn/backend/internal/domain/ledger"
)

// AddressModel is the persistence model for the Address entity. The
// address string is the primary key; the balance check constraint is the
// storage-level backstop for the non-negativity invariant.
type AddressModel struct {
	Address        string    `gorm:"column:address;type:varchar(255);primaryKey"`
	CornletBalance int64     `gorm:"column:cornlet_balance;not null;default:0;check:valid_balance,cornlet_balance >= 0"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *ledger.Address {
	return &ledger.Address{
		Address:        m.Address,
		CornletBalance: m.CornletBalance,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AddressModelFromDomain creates a persistence model from a domain Address.
func AddressModelFromDomain(a *ledger.Address) *AddressModel {
	return &AddressModel{
		Address:        a.Address,
		CornletBalance: a.CornletBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// TransferModel is the persistence model for the Transfer entity. Rows are
// append-only; both endpoints reference addresses and the amount check
// constraint rejects non-positive amounts at the storage layer.
type TransferModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FromAddress   string    `gorm:"column:from_address;type:varchar(255);not null;index:idx_transactions_from"`
	ToAddress     string    `gorm:"column:to_address;type:varchar(255);not null;index:idx_transactions_to"`
	CornletAmount int64     `gorm:"column:cornlet_amount;not null;check:valid_amount,cornlet_amount > 0"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transfer entity.
func (m *TransferModel) ToDomain() *ledger.Transfer {
	return &ledger.Transfer{
		ID:            m.ID,
		FromAddress:   m.FromAddress,
		ToAddress:     m.ToAddress,
		CornletAmount: m.CornletAmount,
		CreatedAt:     m.CreatedAt,
	}
}

// TransferModelFromDomain creates a persistence model from a domain Transfer.
func TransferModelFromDomain(t *ledger.Transfer) *TransferModel {
	return &TransferModel{
		ID:            t.ID,
		FromAddress:   t.FromAddress,
		ToAddress:     t.ToAddress,
		CornletAmount: t.CornletAmount,
		CreatedAt:     t.CreatedAt,
	}
}
