package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaan1984/dee-portal-backend/internal/empid"
)

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"username", "password", "role", "district", "created_at", "updated_at"}).
		AddRow("17101", nil, "district_admin", "Kamrup", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT username, password, role, district, created_at, updated_at FROM users WHERE username = $1 LIMIT 1")).
		WithArgs("17101").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "17101")
	require.NoError(t, err)
	assert.Equal(t, empid.RoleDistrictAdmin, user.Role)
	assert.Nil(t, user.Password)
	require.NotNil(t, user.District)
	assert.Equal(t, "Kamrup", *user.District)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsernameMissing(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySetPassword(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	updatedAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = $2, updated_at = $3 WHERE username = $1")).
		WithArgs("17101", "hashed", updatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetPassword(context.Background(), "17101", "hashed", updatedAt))

	mock.ExpectExec("UPDATE users SET password").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPassword(context.Background(), "nobody", "hashed", updatedAt)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
