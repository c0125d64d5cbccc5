package diag

import (
	"fmt"
	"github.com/caarlos0/env/v11"
	"log/slog"
)

// EnvPrefix is prepended to every environment variable read by [LoadConfig].
const EnvPrefix = "OBSERVE_DIAG_"

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config describes the default diagnostic logger.
//
//	OBSERVE_DIAG_LEVEL     minimum level to log, defaults to WARN
//	OBSERVE_DIAG_FORMAT    "text" or "json", defaults to text
//	OBSERVE_DIAG_DISABLED  discards all diagnostics when true
type Config struct {
	Level    slog.Level `env:"LEVEL" envDefault:"WARN"`
	Format   string     `env:"FORMAT" envDefault:"text"`
	Disabled bool       `env:"DISABLED" envDefault:"false"`
}

func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
	}
}

// LoadConfig reads a [Config] from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix: EnvPrefix,
	}); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse diagnostics config: %w", err)
	}
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return DefaultConfig(), fmt.Errorf("unsupported diagnostics format '%s'", cfg.Format)
	}
	return cfg, nil
}
