package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-backend/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := t.Context()
	insertSQL := regexp.QuoteMeta(`INSERT INTO users (id, name, email, role, cart, created_at, updated_at)`)

	user := &models.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		now := time.Now()

		mock.ExpectQuery(insertSQL).
			WithArgs(user.ID, user.Name, user.Email, user.Role).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.CreateUser(ctx, user)

		require.NoError(t, err)
		assert.WithinDuration(t, now, user.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := t.Context()
	selectSQL := regexp.QuoteMeta(`SELECT id, name, email, role, created_at, updated_at`)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		now := time.Now()

		mock.ExpectQuery(selectSQL).WithArgs(id).WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at", "updated_at"}).
				AddRow(id.String(), "Asha", "asha@example.com", "admin", now, now))

		user, err := repo.GetUserByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(selectSQL).WithArgs(id).WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, id)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserRepository_ListUsers(t *testing.T) {
	ctx := t.Context()
	countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)
	listSQL := regexp.QuoteMeta(`FROM users ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		now := time.Now()

		mock.ExpectQuery(countSQL).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(listSQL).WithArgs(10, 10).WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at", "updated_at"}).
				AddRow(uuid.NewString(), "Asha", "asha@example.com", "customer", now, now).
				AddRow(uuid.NewString(), "Ravi", "ravi@example.com", "admin", now, now))

		users, total, err := repo.ListUsers(ctx, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, users, 2)
		assert.Equal(t, "Ravi", users[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(countSQL).WillReturnError(sql.ErrConnDone)

		users, _, err := repo.ListUsers(ctx, 1, 10)

		assert.Nil(t, users)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestUserRepository_UpdateUser(t *testing.T) {
	ctx := t.Context()
	updateSQL := regexp.QuoteMeta(`UPDATE users SET name = $2, email = $3, updated_at = NOW()`)
	user := &models.User{ID: uuid.New(), Name: "Asha Rao", Email: "asha.rao@example.com"}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		now := time.Now()

		mock.ExpectQuery(updateSQL).WithArgs(user.ID, user.Name, user.Email).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		err := repo.UpdateUser(ctx, user)

		require.NoError(t, err)
		assert.WithinDuration(t, now, user.UpdatedAt, time.Second)
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(updateSQL).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.UpdateUser(ctx, user)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(updateSQL).WillReturnError(sql.ErrNoRows)

		err := repo.UpdateUser(ctx, user)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	ctx := t.Context()
	deleteSQL := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(ctx, id), sql.ErrNoRows)
	})

	t.Run("Failure - Has Orders", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectExec(deleteSQL).WithArgs(id).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "orders_user_id_fkey"})

		assert.ErrorIs(t, repo.DeleteUser(ctx, id), repository.ErrUserHasOrders)
	})
}
