package seed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"OlympicsHub/internal/database"
	"OlympicsHub/internal/model"

	"github.com/sirupsen/logrus"
)

const fixture = `
countries:
  - { name: France, code: fra, flag_url: https://flagcdn.com/fr.svg }
  - { name: Japan, code: JPN }
sports:
  - { name: Swimming, icon: "🏊" }
  - { name: Fencing }
`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", fixture, false},
		{"bad code", "countries:\n  - { name: X, code: XX }\n", true},
		{"missing country name", "countries:\n  - { code: ABC }\n", true},
		{"missing sport name", "sports:\n  - { icon: x }\n", true},
		{"not yaml", "countries: [", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && f.Countries[0].Code != "FRA" {
				t.Errorf("code not normalised: %q", f.Countries[0].Code)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := t.TempDir()
	file := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(file, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}

	seeder := NewSeeder(db, logger)
	first, err := seeder.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if first.Countries != 2 || first.SportsCreated != 2 || first.SportsUpdated != 0 {
		t.Errorf("first run = %+v", first)
	}

	f.Countries[0].Name = "République française"
	second, err := seeder.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if second.SportsCreated != 0 || second.SportsUpdated != 2 {
		t.Errorf("second run = %+v", second)
	}

	var countries []model.Country
	db.Order("code").Find(&countries)
	if len(countries) != 2 || countries[0].Name != "République française" {
		t.Errorf("countries = %+v", countries)
	}
	var sports int64
	db.Model(&model.Sport{}).Count(&sports)
	if sports != 2 {
		t.Errorf("sports = %d, want 2", sports)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
