package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/parallel-lz77/plz"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ANSV ANSVConfig `mapstructure:"ansv"`
	LZ   LZConfig   `mapstructure:"lz"`
	Log  LogConfig  `mapstructure:"log"`
}

// ANSVConfig controls partitioning of the nearest-smaller-values engine.
type ANSVConfig struct {
	// Workers is the size of the worker pool; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// ChunkFactor is the number of chunks per worker.
	ChunkFactor int `mapstructure:"chunkFactor"`
	// ChunkSize forces a fixed chunk size when positive.
	ChunkSize int `mapstructure:"chunkSize"`
}

// LZConfig stores factorization settings.
type LZConfig struct {
	MinBlockSize int `mapstructure:"minBlockSize"`
}

// LogConfig stores logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when nothing is loaded.
func Default() Config {
	return Config{
		ANSV: ANSVConfig{
			Workers:     internal.DefaultWorkers,
			ChunkFactor: internal.DefaultChunkFactor,
			ChunkSize:   internal.DefaultChunkSize,
		},
		LZ:  LZConfig{MinBlockSize: internal.DefaultLZMinBlockSize},
		Log: LogConfig{Level: internal.DefaultLogLevel},
	}
}

// LoadConfig reads configuration from file or environment variables.
// An empty configPath searches the usual locations; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	def := Default()
	v.SetDefault("ansv.workers", def.ANSV.Workers)
	v.SetDefault("ansv.chunkFactor", def.ANSV.ChunkFactor)
	v.SetDefault("ansv.chunkSize", def.ANSV.ChunkSize)
	v.SetDefault("lz.minBlockSize", def.LZ.MinBlockSize)
	v.SetDefault("log.level", def.Log.Level)

	// e.g. ansv.chunkFactor becomes PLZ_ANSV_CHUNKFACTOR
	v.SetEnvPrefix(internal.DefaultEnvPrefix)
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
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ANSV.Workers < 0:
		return fmt.Errorf("%w: ansv.workers must be >= 0, got %d", ErrInvalidConfig, c.ANSV.Workers)
	case c.ANSV.ChunkFactor < 1:
		return fmt.Errorf("%w: ansv.chunkFactor must be >= 1, got %d", ErrInvalidConfig, c.ANSV.ChunkFactor)
	case c.ANSV.ChunkSize < 0:
		return fmt.Errorf("%w: ansv.chunkSize must be >= 0, got %d", ErrInvalidConfig, c.ANSV.ChunkSize)
	case c.LZ.MinBlockSize < 1:
		return fmt.Errorf("%w: lz.minBlockSize must be >= 1, got %d", ErrInvalidConfig, c.LZ.MinBlockSize)
	}
	return nil
}
