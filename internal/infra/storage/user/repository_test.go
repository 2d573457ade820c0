package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestRepository_GetByID(t *testing.T) {
	columns := []string{"id", "email", "full_name", "role", "is_active"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, full_name, role, is_active FROM users WHERE id = $1`)).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(4), "olga@example.com", "Olga Owner", "OWNER", true))

		u, err := NewRepository(db).GetByID(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, u.Role)
		assert.True(t, u.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).WillReturnRows(sqlmock.NewRows(columns))

		_, err = NewRepository(db).GetByID(context.Background(), 4)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).WillReturnError(errors.New("connection reset"))

		_, err = NewRepository(db).GetByID(context.Background(), 4)

		assert.ErrorIs(t, err, ErrScanRow)
	})
}
