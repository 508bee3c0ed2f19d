package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/trail-service/internal/models"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewDatabase(gdb), mock
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDatabase(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO "users" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := db.CreateUser(context.Background(), "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{constraint: "idx_users_username", field: "username"},
		{constraint: "idx_users_email", field: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			db, mock := newMockDatabase(t)
			mock.ExpectQuery(`INSERT INTO "users"`).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			_, err := db.CreateUser(context.Background(), "alice", "alice@example.com", "hash")

			var dup *DuplicateKeyError
			require.True(t, errors.As(err, &dup), "got %v", err)
			assert.Equal(t, tt.field, dup.Field)
			assert.Equal(t, tt.constraint, dup.Constraint)
		})
	}
}

func TestCreateUser_OtherErrorsPassThrough(t *testing.T) {
	db, mock := newMockDatabase(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(boom)

	_, err := db.CreateUser(context.Background(), "alice", "alice@example.com", "hash")
	assert.ErrorIs(t, err, boom)

	var dup *DuplicateKeyError
	assert.False(t, errors.As(err, &dup))
}

func TestExistsByEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := db.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsername_OnlyActive(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*username = \$1 AND active = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := db.FindUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTrailByID_SkipsDeleted(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectQuery(`SELECT \* FROM "trails" WHERE .*id = \$1 AND is_deleted = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := db.FindTrailByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTrail(t *testing.T) {
	mod := models.Modification{By: uuid.New(), At: time.Now().UTC()}
	fields := models.TrailFields{Name: "Ridge Walk", IsPublic: true}

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectExec(`UPDATE "trails" SET .*"last_modified_by"=.* WHERE .*id = \$\d+ AND owner_id = \$\d+ AND is_deleted = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, db.UpdateTrail(context.Background(), uuid.New(), fields, mod))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectExec(`UPDATE "trails" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := db.UpdateTrail(context.Background(), uuid.New(), fields, mod)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSoftDeleteTrail(t *testing.T) {
	mod := models.Modification{By: uuid.New(), At: time.Now().UTC()}

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectExec(`UPDATE "trails" SET .*"is_deleted"=.* WHERE .*is_deleted = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, db.SoftDeleteTrail(context.Background(), uuid.New(), mod))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectExec(`UPDATE "trails" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := db.SoftDeleteTrail(context.Background(), uuid.New(), mod)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearchTrails(t *testing.T) {
	db, mock := newMockDatabase(t)
	id := uuid.New()
	pattern := `%100\%%`

	mock.ExpectQuery(`SELECT \* FROM "trails" WHERE .*is_public = \$1 AND is_deleted = \$2.*name ILIKE \$3 OR nearest_town ILIKE \$4 OR finish_location ILIKE \$5.*difficulty = \$6 ORDER BY created_at DESC,id DESC`).
		WithArgs(true, false, pattern, pattern, pattern, "Hard").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_public"}).AddRow(id.String(), "Peak 100%", true))

	trails, err := db.SearchTrails(context.Background(), "100%", models.DifficultyHard)
	require.NoError(t, err)
	require.Len(t, trails, 1)
	assert.Equal(t, id, trails[0].ID)
	assert.Equal(t, "Peak 100%", trails[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublicTrails_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectQuery(`SELECT \* FROM "trails" WHERE .*is_public = \$1 AND is_deleted = \$2.*ORDER BY created_at DESC,id DESC`).
		WithArgs(true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	trails, err := db.ListPublicTrails(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trails)
	assert.Empty(t, trails)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_road \\ trail`, escapeLike(`50% off_road \ trail`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
