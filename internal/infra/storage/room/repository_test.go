package room

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

var roomColumns = []string{
	"id", "residence_id", "title", "price_per_month", "is_available", "name", "address", "owner_id",
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT rm.id, rm.residence_id, rm.title, rm.price_per_month, rm.is_available, res.name, res.address, res.owner_id FROM rooms rm JOIN residences res ON res.id = rm.residence_id WHERE rm.id = $1`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(int64(3), int64(2), "Room 1", 500.0, true, "North Hall", "1 Main St", int64(4)))

		room, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "Room 1", room.Title)
		assert.Equal(t, 500.0, room.PricePerMonth)
		assert.True(t, room.IsAvailable)
		assert.True(t, room.IsOwnedBy(4))
		assert.False(t, room.IsOwnedBy(5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms rm`)).
			WillReturnRows(sqlmock.NewRows(roomColumns))

		_, err = repo.GetByID(context.Background(), 3)

		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("locks room inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE rm.id = $1 FOR UPDATE OF rm`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(int64(3), int64(2), "Room 1", 500.0, false, "North Hall", nil, nil))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

		room, err := repo.GetByID(ctx, 3)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		assert.Nil(t, room.OwnerID)
		assert.Nil(t, room.ResidenceAddress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SetAvailability(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET is_available = $1 WHERE id = $2`)).
			WithArgs(false, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetAvailability(context.Background(), 3, false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetAvailability(context.Background(), 3, false), ErrRoomNotFound)
	})
}
