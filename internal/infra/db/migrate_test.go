package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var errExec = errors.New("permission denied for schema public")

func newMock(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return mock, sqlDB
}

func TestMigrateUp(t *testing.T) {
	mock, sqlDB := newMock(t)
	defer sqlDB.Close()

	// Three tables, two indexes, then the platform seed.
	for i := 0; i < 5; i++ {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO platforms").WillReturnResult(sqlmock.NewResult(0, 2))

	if err := MigrateUp(sqlDB); err != nil {
		t.Fatalf("MigrateUp() err = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMigrateUp_PropagatesError(t *testing.T) {
	mock, sqlDB := newMock(t)
	defer sqlDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS platforms").
		WillReturnError(errExec)

	if err := MigrateUp(sqlDB); err == nil {
		t.Fatal("MigrateUp() err = nil, want table creation error")
	}
}
