package cli

import (
	"testing"

	"OlympicsHub/internal/config"
	"OlympicsHub/internal/model"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg       config.LogConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{config.LogConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, true},
		{config.LogConfig{Level: "WARN", Format: "text"}, logrus.WarnLevel, false},
		{config.LogConfig{Level: "chatty"}, logrus.InfoLevel, false},
		{config.LogConfig{}, logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		logger := newLogger(tt.cfg)
		if logger.GetLevel() != tt.wantLevel {
			t.Errorf("%+v: level = %v, want %v", tt.cfg, logger.GetLevel(), tt.wantLevel)
		}
		_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
		if isJSON != tt.wantJSON {
			t.Errorf("%+v: json formatter = %v", tt.cfg, isJSON)
		}
	}
}

func TestTableName(t *testing.T) {
	if got := tableName(&model.Medal{}); got != "medals" {
		t.Errorf("tableName = %q", got)
	}
	if len(model.All()) == 0 {
		t.Fatal("no models registered")
	}
	for _, m := range model.All() {
		if _, ok := m.(tabler); !ok {
			t.Errorf("%T has no TableName", m)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "migrate": false, "seed": false, "health": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
	if f := seedCmd.Flags().Lookup("file"); f == nil || f.DefValue != "config/seed.yaml" {
		t.Errorf("seed --file flag = %+v", f)
	}
}
