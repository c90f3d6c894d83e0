package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/project-aoi-backend/errs"
)

func TestDatabase_AcquireReturnsCallbackError(t *testing.T) {
	db, _ := setupMockDatabase(t)
	want := errors.New("handler failed")

	err := db.Acquire(context.Background(), func(s *Session) error {
		assert.NotNil(t, s.ProjectRepo())
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.False(t, errs.IsDatabaseConnectionError(err))
}

func TestDatabase_AcquireReleasesConnectionOnPanic(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	sqlDB.SetMaxOpenConns(1)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db := New(gdb)

	assert.Panics(t, func() {
		_ = db.Acquire(context.Background(), func(*Session) error {
			panic("boom")
		})
	})

	// With a single-connection pool this blocks until the deadline if the
	// connection was not handed back.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	called := false
	err = db.Acquire(ctx, func(*Session) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDatabase_AcquireFailsWhenPoolIsClosed(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	called := false
	err = New(gdb).Acquire(context.Background(), func(*Session) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errs.IsDatabaseConnectionError(err))
	assert.Equal(t, 503, errs.StatusCode(err))
}

func TestDatabase_Ping(t *testing.T) {
	db, _ := setupMockDatabase(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestDatabase_CheckSchema(t *testing.T) {
	schemaQuery := `SELECT column_name\s+FROM information_schema.columns`

	t.Run("matching table", func(t *testing.T) {
		db, mock := setupMockDatabase(t)
		rows := sqlmock.NewRows([]string{"column_name"})
		for _, col := range projectColumns {
			rows.AddRow(col)
		}
		mock.ExpectQuery(schemaQuery).WithArgs("projects").WillReturnRows(rows)

		report, err := db.CheckSchema(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "projects", report.Table)
		assert.Empty(t, report.Unmapped)
		assert.Empty(t, report.Missing)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("extra column is reported but accepted", func(t *testing.T) {
		db, mock := setupMockDatabase(t)
		rows := sqlmock.NewRows([]string{"column_name"})
		for _, col := range append(projectColumns, "owner") {
			rows.AddRow(col)
		}
		mock.ExpectQuery(schemaQuery).WithArgs("projects").WillReturnRows(rows)

		report, err := db.CheckSchema(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"owner"}, report.Unmapped)
		assert.Empty(t, report.Missing)
	})

	t.Run("missing column is an error", func(t *testing.T) {
		db, mock := setupMockDatabase(t)
		rows := sqlmock.NewRows([]string{"column_name"})
		for _, col := range projectColumns[:5] {
			rows.AddRow(col)
		}
		mock.ExpectQuery(schemaQuery).WithArgs("projects").WillReturnRows(rows)

		report, err := db.CheckSchema(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsSchemaMismatchError(err))
		assert.Equal(t, []string{"area_of_interest"}, report.Missing)
	})

	t.Run("missing table is an error", func(t *testing.T) {
		db, mock := setupMockDatabase(t)
		mock.ExpectQuery(schemaQuery).WithArgs("projects").
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

		_, err := db.CheckSchema(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsSchemaMismatchError(err))
		assert.Contains(t, err.Error(), "table does not exist")
	})
}

func TestFindColumnMismatches(t *testing.T) {
	tests := []struct {
		name string
		have []string
		want []string
		out  []string
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, nil},
		{"extra", []string{"a", "b", "c"}, []string{"a", "b"}, []string{"c"}},
		{"order does not matter", []string{"b", "a"}, []string{"a", "b"}, nil},
		{"empty want", []string{"a"}, nil, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, findColumnMismatches(tt.have, tt.want))
		})
	}
}
