package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/bitcorn/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eligibleBatchSize is the page size for the stake eligibility scan.
const eligibleBatchSize = 100

// GormAddressRepository implements ledger.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByAddress finds an address by its normalized identifier
func (r *GormAddressRepository) FindByAddress(ctx context.Context, address string) (*ledger.Address, error) {
	id := ledger.NormalizeAddress(address)

	var model models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("address = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreate returns the address, creating a zero-balance row if absent
func (r *GormAddressRepository) FindOrCreate(ctx context.Context, address string) (*ledger.Address, error) {
	existing, err := r.FindByAddress(ctx, address)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created, err := r.Create(ctx, address)
	if err == nil {
		return created, nil
	}
	// Lost a creation race; the row exists now.
	if errors.Is(err, shared.ErrAlreadyExists) {
		return r.FindByAddress(ctx, address)
	}
	return nil, err
}

// Create inserts a new zero-balance address row
func (r *GormAddressRepository) Create(ctx context.Context, address string) (*ledger.Address, error) {
	model := models.AddressModelFromDomain(ledger.NewAddress(address))
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes an address row. Compensation for failed onboarding only.
func (r *GormAddressRepository) Delete(ctx context.Context, address string) error {
	id := ledger.NormalizeAddress(address)
	return r.db.WithContext(ctx).
		Where("address = ?", id).
		Delete(&models.AddressModel{}).Error
}

// ApplyDelta atomically adjusts a balance by the signed amount. The guard
// against a negative result is part of the UPDATE itself, so the check and
// the mutation cannot be interleaved by a concurrent writer.
func (r *GormAddressRepository) ApplyDelta(ctx context.Context, address string, delta int64) error {
	id := ledger.NormalizeAddress(address)

	result := r.db.WithContext(ctx).
		Model(&models.AddressModel{}).
		Where("address = ? AND cornlet_balance + ? >= 0", id, delta).
		Updates(map[string]any{
			"cornlet_balance": gorm.Expr("cornlet_balance + ?", delta),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrCheckConstraintViolated) {
			return shared.ErrConcurrencyConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is missing or the guard rejected the delta.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.AddressModel{}).
			Where("address = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientBalance
	}
	return nil
}

// LockForTransfer acquires row locks on the given addresses in
// lexicographic order for the remainder of the enclosing transaction.
// SQLite serializes writers on its own, so the locking clause is only
// emitted for dialects that support it.
func (r *GormAddressRepository) LockForTransfer(ctx context.Context, addresses ...string) error {
	ids := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		id := ledger.NormalizeAddress(a)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.AddressModel
	return query.
		Where("address IN ?", ids).
		Order("address").
		Find(&rows).Error
}

// ForEachEligible streams addresses with balance >= minBalance, excluding
// the given identifier, in a single keyset-paged pass.
func (r *GormAddressRepository) ForEachEligible(ctx context.Context, minBalance int64, exclude string, fn func(*ledger.Address) error) error {
	excludeID := ledger.NormalizeAddress(exclude)

	var batch []models.AddressModel
	result := r.db.WithContext(ctx).
		Where("cornlet_balance >= ? AND address <> ?", minBalance, excludeID).
		FindInBatches(&batch, eligibleBatchSize, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				if err := fn(batch[i].ToDomain()); err != nil {
					return err
				}
			}
			return nil
		})
	return result.Error
}

// Ensure GormAddressRepository implements ledger.AddressRepository
var _ ledger.AddressRepository = (*GormAddressRepository)(nil)
