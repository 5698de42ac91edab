package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T, logg *logger.Logger, cfg config.DBConfig) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), gormConfig(logg, cfg))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestPing(t *testing.T) {
	client := &Client{conn: newTestDB(t, nil, config.DBConfig{})}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Dialect() != DialectPostgres {
		t.Fatalf("expected default dialect postgres, got %s", client.Dialect())
	}
}

func TestNewSQLite(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: "sqlite", MaxOpenConns: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
	if client.Dialect() != DialectSQLite {
		t.Fatalf("expected sqlite3 dialect, got %s", client.Dialect())
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{DSN: "  "}, nil); err == nil {
		t.Fatal("expected error without dsn")
	}
}

func TestSlowQueriesReachServiceLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Format: logger.FormatJSON, Output: buf})
	conn := newTestDB(t, logg, config.DBConfig{SlowQueryThreshold: time.Nanosecond})

	if err := conn.Create(&testModel{Name: "serum"}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"message":"db.query"`)) {
		t.Fatalf("expected slow query to be logged, got %s", buf.String())
	}
	if bytes.Contains(buf.Bytes(), []byte("serum")) {
		t.Fatalf("query parameters should not be logged, got %s", buf.String())
	}
}

func TestIsNotFound(t *testing.T) {
	conn := newTestDB(t, nil, config.DBConfig{})
	var row testModel
	err := conn.First(&row, 999).Error
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if IsNotFound(errors.New("other")) {
		t.Fatalf("unexpected not found match")
	}
}
