package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartRepo(t *testing.T) {
	db, _ := newMockDB(t)
	assert.NotNil(t, repository.NewCartRepo(db), "NewCartRepo should return a non-nil repository")
}

func TestCartRepository_GetCart(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	selectSQL := regexp.QuoteMeta(`SELECT cart FROM users WHERE id = $1`)

	t.Run("Success - Decodes Variant Keys", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		stored := models.NewCart(userID)
		product := &models.Product{ID: uuid.New(), Name: "Tee", Price: decimal.NewFromInt(499), Stock: 3}
		key, err := stored.AddItem(product, 2, "M", "red", time.Now())
		require.NoError(t, err)

		raw, err := json.Marshal(stored.Items)
		require.NoError(t, err)

		mock.ExpectQuery(selectSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow(raw))

		// Act
		cart, err := repo.GetCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Contains(t, cart.Items, key)
		assert.Equal(t, 2, cart.Items[key].Quantity)
		assert.Equal(t, userID, cart.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(selectSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow([]byte(`{}`)))

		cart, err := repo.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(selectSQL).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		cart, err := repo.GetCart(ctx, userID)

		assert.Nil(t, cart)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Cart JSON", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(selectSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow([]byte(`[1,2]`)))

		cart, err := repo.GetCart(ctx, userID)

		assert.Nil(t, cart)
		assert.ErrorContains(t, err, "failed to unmarshal cart items")
	})
}

func TestCartRepository_UpdateCart(t *testing.T) {
	ctx := t.Context()
	updateSQL := regexp.QuoteMeta(`UPDATE users SET cart = $1, updated_at = NOW() WHERE id = $2`)

	cart := models.NewCart(uuid.New())

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectExec(updateSQL).WithArgs([]byte(`{}`), cart.UserID).WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateCart(ctx, cart)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectExec(updateSQL).WithArgs(sqlmock.AnyArg(), cart.UserID).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateCart(ctx, cart)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectExec(updateSQL).WithArgs(sqlmock.AnyArg(), cart.UserID).WillReturnError(errors.New("connection reset"))

		err := repo.UpdateCart(ctx, cart)

		assert.ErrorContains(t, err, "failed to update cart")
	})
}
