package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &DB{DB: sqlDB, logger: zap.NewNop()}, mock
}

func userColumns() []string {
	return []string{"id", "email", "name", "password_hash", "created_at", "updated_at"}
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	user := models.NewUser("alice@example.com", "Alice", "hash")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	id := uuid.New()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(id, "alice@example.com", "Alice", "hash", now, now)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, password_hash, created_at, updated_at")).
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, password_hash, created_at, updated_at")).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		user, err := repo.GetByEmail(context.Background(), "missing@example.com")
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, repositories.IsNotFound(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(id, "bob@example.com", "Bob", "hash", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, password_hash, created_at, updated_at")).
		WithArgs(id).
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	user := models.NewUser("alice@example.com", "Alice", "hash")

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs(user.ID, user.Email, user.Name, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), user)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs(user.ID, user.Email, user.Name, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), user)
		assert.True(t, repositories.IsNotFound(err))
	})
}

func TestUserRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(uuid.New(), "a@example.com", "A", "hash", now, now).
		AddRow(uuid.New(), "b@example.com", "B", "hash", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, password_hash, created_at, updated_at")).
		WithArgs(10, 0).
		WillReturnRows(rows)

	users, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
