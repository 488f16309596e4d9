package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"observation-quiz/internal/domain"
)

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Output    OutputConfig    `mapstructure:"output"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type GeneratorConfig struct {
	Seed          uint64        `mapstructure:"seed"`
	ItemCount     int           `mapstructure:"item_count"`
	DifficultyMix DifficultyMix `mapstructure:"difficulty_mix"`
}

// DifficultyMix is the exact number of items per tier.
type DifficultyMix struct {
	Easy   int `mapstructure:"easy"`
	Medium int `mapstructure:"medium"`
	Hard   int `mapstructure:"hard"`
}

type OutputConfig struct {
	ImageDir       string `mapstructure:"image_dir"`
	ImageURLPrefix string `mapstructure:"image_url_prefix"`
	DatasetFile    string `mapstructure:"dataset_file"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
	Env   string `mapstructure:"env"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Counts returns the mix keyed by tier.
func (m DifficultyMix) Counts() map[domain.Difficulty]int {
	return map[domain.Difficulty]int{
		domain.Easy:   m.Easy,
		domain.Medium: m.Medium,
		domain.Hard:   m.Hard,
	}
}

// Total is the number of items the mix describes.
func (m DifficultyMix) Total() int {
	return m.Easy + m.Medium + m.Hard
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.seed", 2026)
	v.SetDefault("generator.item_count", 200)
	v.SetDefault("generator.difficulty_mix.easy", 120)
	v.SetDefault("generator.difficulty_mix.medium", 60)
	v.SetDefault("generator.difficulty_mix.hard", 20)

	v.SetDefault("output.image_dir", "public/observation-images")
	v.SetDefault("output.image_url_prefix", "/observation-images")
	v.SetDefault("output.dataset_file", "src/data/questions/observation-power.json")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.file", "")

	v.SetDefault("metrics.textfile", "")
}

// Default returns the configuration that reproduces the canonical dataset.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// LoadConfig reads an optional config.yaml from searchPaths (default "." and
// "./config"), applies OBSERVATION_* environment overrides and validates the result.
// A missing config file is not an error.
func LoadConfig(searchPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "./config"}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("OBSERVATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings under which the batch's exact distribution
// guarantees cannot hold.
func (c *Config) Validate() error {
	g := c.Generator
	if g.ItemCount <= 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("generator.item_count must be positive, got %d", g.ItemCount))
	}
	if g.DifficultyMix.Easy < 0 || g.DifficultyMix.Medium < 0 || g.DifficultyMix.Hard < 0 {
		return domain.NewInvalidInputError("generator.difficulty_mix entries must not be negative")
	}
	if g.DifficultyMix.Total() != g.ItemCount {
		return domain.NewInvalidInputError(fmt.Sprintf("generator.difficulty_mix sums to %d, want %d", g.DifficultyMix.Total(), g.ItemCount))
	}
	if g.ItemCount%len(domain.ShapeKinds) != 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("generator.item_count %d is not a multiple of %d shape kinds", g.ItemCount, len(domain.ShapeKinds)))
	}
	if c.Output.ImageDir == "" || c.Output.DatasetFile == "" || c.Output.ImageURLPrefix == "" {
		return domain.NewInvalidInputError("output.image_dir, output.image_url_prefix and output.dataset_file are required")
	}
	if filepath.Clean(c.Output.DatasetFile) == filepath.Clean(c.Output.ImageDir) {
		return domain.NewInvalidInputError("output.dataset_file must not be the image directory")
	}
	return nil
}
