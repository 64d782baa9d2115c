package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bitcorn/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAddressRepository creates a GormAddressRepository with a mocked SQL connection
func newMockAddressRepository(t *testing.T) (*GormAddressRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAddressRepository(gormDB), mock, mockDB
}

func TestGormAddressRepository_FindByAddress_Postgres(t *testing.T) {
	t.Run("finds existing address", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"address", "cornlet_balance", "created_at", "updated_at"}).
			AddRow("alice", int64(500), now, now)

		mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE address = \$1`).
			WithArgs("alice", 1).
			WillReturnRows(rows)

		addr, err := repo.FindByAddress(context.Background(), "ALICE")

		assert.NoError(t, err)
		assert.Equal(t, "alice", addr.Address)
		assert.Equal(t, int64(500), addr.CornletBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing row", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE address = \$1`).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"address"}))

		_, err := repo.FindByAddress(context.Background(), "ghost")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_ApplyDelta_Postgres(t *testing.T) {
	t.Run("issues single guarded update", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "addresses" SET .+ WHERE address = \$3 AND cornlet_balance \+ \$4 >= 0`).
			WithArgs(int64(-40), sqlmock.AnyArg(), "alice", int64(-40)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyDelta(context.Background(), "alice", -40)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps guarded rejection to insufficient balance", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "addresses" SET .+ WHERE address = \$3 AND cornlet_balance \+ \$4 >= 0`).
			WithArgs(int64(-9999), sqlmock.AnyArg(), "alice", int64(-9999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "addresses" WHERE address = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.ApplyDelta(context.Background(), "alice", -9999)

		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "addresses" SET .+ WHERE address = \$3 AND cornlet_balance \+ \$4 >= 0`).
			WithArgs(int64(10), sqlmock.AnyArg(), "ghost", int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "addresses" WHERE address = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.ApplyDelta(context.Background(), "ghost", 10)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_LockForTransfer_Postgres(t *testing.T) {
	repo, mock, mockDB := newMockAddressRepository(t)
	defer mockDB.Close()

	// Lexicographic order regardless of call order, FOR UPDATE emitted
	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE address IN \(\$1,\$2\) ORDER BY address FOR UPDATE`).
		WithArgs("alice", "bob").
		WillReturnRows(sqlmock.NewRows([]string{"address", "cornlet_balance"}).
			AddRow("alice", int64(10)).
			AddRow("bob", int64(20)))

	err := repo.LockForTransfer(context.Background(), "bob", "ALICE")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
