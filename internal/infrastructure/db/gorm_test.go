package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	// pings unmonitored: gorm pings on open and OpenGormWithDialector pings again
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if !gdb.Config.TranslateError {
		t.Fatalf("TranslateError must be enabled")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.db")
	gdb, err := Open("sqlite", path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	if name := gdb.Dialector.Name(); name != "sqlite" {
		t.Fatalf("dialector = %q, want sqlite", name)
	}
	sqlDB, _ := gdb.DB()
	_ = sqlDB.Close()
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"loans.db", "loans.db?" + sqliteParams},
		{"file:loans.db?cache=shared", "file:loans.db?cache=shared&" + sqliteParams},
	}
	for _, tt := range tests {
		if got := SQLiteDSN(tt.in); got != tt.want {
			t.Fatalf("SQLiteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
