package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/duel/ecs/component"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != 60 || cfg.PrefabDir != "prefabs" || cfg.BotThink != 0.1 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Policy() != component.FacingWhileMoving {
		t.Fatalf("expected moving policy by default")
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yamlPath := filepath.Join(dir, "duel.yaml")
	writeFile(t, yamlPath, "tick_rate: 30\nfacing_policy: run\nbot1: brawler\nlog:\n  level: debug\n")
	writeFile(t, filepath.Join(dir, DotenvFile), "DUEL_BOT2=cautious\nDUEL_TICK_RATE=45\n")
	t.Setenv("DUEL_TICK_RATE", "120")
	t.Setenv("DUEL_LOG_FORMAT", "json")
	t.Cleanup(func() { os.Unsetenv("DUEL_BOT2") })

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != 120 {
		t.Fatalf("process env should win, got tick rate %d", cfg.TickRate)
	}
	if cfg.Policy() != component.FacingWhileRunning || cfg.Bot1Script != "brawler" {
		t.Fatalf("yaml layer not applied: %+v", cfg)
	}
	if cfg.Bot2Script != "cautious" {
		t.Fatalf(".env layer not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log settings not layered: %+v", cfg.Log)
	}
	if got := cfg.Logger(); got.Level != "debug" || got.Format != "json" {
		t.Fatalf("unexpected logger config %+v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{name: "bad_env_value", env: map[string]string{"DUEL_TICK_RATE": "fast"}, wantMsg: "config: parse env"},
		{name: "zero_tick_rate", env: map[string]string{"DUEL_TICK_RATE": "0"}, wantErr: ErrInvalidConfig},
		{name: "unknown_policy", env: map[string]string{"DUEL_FACING_POLICY": "sideways"}, wantErr: ErrInvalidConfig},
		{name: "bad_yaml", yaml: "tick_rate: [", wantMsg: "config: unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.yaml != "" {
				path = filepath.Join(dir, "duel.yaml")
				writeFile(t, path, tc.yaml)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoadMissingYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
