package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ImagesConfig struct {
	Dir         string `yaml:"dir"`
	Dim         Dim    `yaml:"dim"`
	Prefix      string `yaml:"prefix"`
	ColorSuffix string `yaml:"color_suffix"`
	MaskSuffix  string `yaml:"mask_suffix"`
}

type WindowConfig struct {
	Delta    int      `yaml:"delta"`
	Ordering Ordering `yaml:"ordering,omitempty"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir,omitempty"`
	Name        string `yaml:"name"`
	Compression string `yaml:"compression,omitempty"`
}

type Config struct {
	Images  ImagesConfig `yaml:"images"`
	Window  WindowConfig `yaml:"window"`
	Output  OutputConfig `yaml:"output"`
	Workers int          `yaml:"workers,omitempty"`
	Strict  bool         `yaml:"strict,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Images: ImagesConfig{
			Dir:         "res/img100",
			Dim:         Dim{Rows: 100, Cols: 133},
			Prefix:      "bsp",
			ColorSuffix: "_0.png",
			MaskSuffix:  "_1.png",
		},
		Window: WindowConfig{
			Delta:    10,
			Ordering: OrderRows,
		},
		Output: OutputConfig{
			Name:        "data-img100.csv",
			Compression: CompressionNone,
		},
		Workers: 4,
	}
}

func (c *Config) Validate() error {
	if err := c.Images.Dim.Validate(); err != nil {
		return fmt.Errorf("images.dim: %w", err)
	}
	if c.Images.ColorSuffix == "" || c.Images.MaskSuffix == "" {
		return fmt.Errorf("images: color_suffix and mask_suffix are required")
	}
	if c.Images.ColorSuffix == c.Images.MaskSuffix {
		return fmt.Errorf("images: color_suffix and mask_suffix must differ")
	}
	if c.Window.Delta < 0 {
		return fmt.Errorf("window.delta: %w", ErrInvalidDelta)
	}
	if _, err := ParseOrdering(string(c.Window.Ordering)); err != nil {
		return fmt.Errorf("window.ordering: %w", err)
	}
	if _, err := ParseCompression(c.Output.Compression); err != nil {
		return fmt.Errorf("output.compression: %w", err)
	}
	if c.Output.Name == "" {
		return fmt.Errorf("output.name is required")
	}
	return nil
}

func LoadConfig(ws Workspace) (*Config, error) {
	path := ws.ConfigPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func SaveConfig(ws Workspace, cfg *Config) error {
	path := ws.ConfigPath()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
