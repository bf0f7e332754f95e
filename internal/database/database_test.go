package database

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"OlympicsHub/internal/config"
	"OlympicsHub/internal/model"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenMemory_MigratesAllTables(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	for _, m := range model.All() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("table for %T not created", m)
		}
	}
}

func TestOpen_SQLiteFile(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "olympics.db"),
	}
	db, err := Open(cfg, false, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := db.Create(&model.Country{Name: "Kenya", Code: "KEN"}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := Ping(ctx, cfg); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{"missing dsn", config.DatabaseConfig{Driver: DriverPostgres}},
		{"unknown driver", config.DatabaseConfig{Driver: "oracle", DSN: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.cfg, false, quietLogger()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOpen_SQLGoesThroughLogrus(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	cfg := config.DatabaseConfig{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "debug.db")}
	db, err := Open(cfg, true, log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	buf.Reset()
	if err := db.Create(&model.Sport{Name: "Judo"}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !strings.Contains(buf.String(), "INSERT INTO") {
		t.Errorf("debug SQL not logged through logrus: %q", buf.String())
	}
}
