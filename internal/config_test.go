package internal

import (
	"os"
	"testing"
)

func setupConfigWorkspace(t *testing.T) Workspace {
	t.Helper()
	ws := Workspace{Root: t.TempDir()}
	if err := ws.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return ws
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Images.Dir != "res/img100" {
		t.Errorf("expected images dir 'res/img100', got %q", cfg.Images.Dir)
	}
	if cfg.Images.Dim != (Dim{Rows: 100, Cols: 133}) {
		t.Errorf("expected dim 100/133, got %v", cfg.Images.Dim)
	}
	if cfg.Window.Delta != 10 {
		t.Errorf("expected delta 10, got %d", cfg.Window.Delta)
	}
	if cfg.Window.Ordering != OrderRows {
		t.Errorf("expected ordering rows, got %q", cfg.Window.Ordering)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	ws := setupConfigWorkspace(t)

	cfg := DefaultConfig()
	cfg.Window.Delta = 3
	cfg.Window.Ordering = OrderRowsCols
	cfg.Output.Compression = CompressionZstd
	cfg.Strict = true

	if err := SaveConfig(ws, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(ws)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Window.Delta != 3 {
		t.Errorf("delta = %d, want 3", loaded.Window.Delta)
	}
	if loaded.Window.Ordering != OrderRowsCols {
		t.Errorf("ordering = %q, want %q", loaded.Window.Ordering, OrderRowsCols)
	}
	if loaded.Output.Compression != CompressionZstd {
		t.Errorf("compression = %q, want %q", loaded.Output.Compression, CompressionZstd)
	}
	if !loaded.Strict {
		t.Error("expected strict to survive round trip")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	ws := setupConfigWorkspace(t)

	cfg, err := LoadConfig(ws)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Should return default config when file doesn't exist
	if cfg.Window.Delta != 10 {
		t.Errorf("expected default delta, got %d", cfg.Window.Delta)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	ws := setupConfigWorkspace(t)
	if err := os.WriteFile(ws.ConfigPath(), []byte("window:\n  delta: 2\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(ws)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Delta != 2 {
		t.Errorf("delta = %d, want 2", cfg.Window.Delta)
	}
	if cfg.Images.MaskSuffix != "_1.png" {
		t.Errorf("mask suffix = %q, want default", cfg.Images.MaskSuffix)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	ws := setupConfigWorkspace(t)
	if err := os.WriteFile(ws.ConfigPath(), []byte("{{invalid yaml:::"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadConfig(ws); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Images.Dim.Rows = 0 }},
		{"negative delta", func(c *Config) { c.Window.Delta = -1 }},
		{"bad ordering", func(c *Config) { c.Window.Ordering = "spiral" }},
		{"bad compression", func(c *Config) { c.Output.Compression = "rar" }},
		{"same suffix", func(c *Config) { c.Images.MaskSuffix = c.Images.ColorSuffix }},
		{"no output name", func(c *Config) { c.Output.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
