package logger

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum logging level.
	Level zapcore.Level `mapstructure:"level"`

	// Development switches to console encoding with human-readable
	// timestamps. Production mode (false) uses JSON encoding.
	Development bool `mapstructure:"development"`

	// OutputPaths is a list of URLs or file paths to write logging output to.
	// If empty, defaults to stderr.
	OutputPaths []string `mapstructure:"outputPaths"`

	// ErrorOutputPaths is a list of URLs or file paths to write internal
	// logger errors to. If empty, defaults to stderr.
	ErrorOutputPaths []string `mapstructure:"errorOutputPaths"`

	// StacktraceLevel is the minimum level at which stacktraces are captured.
	// Defaults to ErrorLevel.
	StacktraceLevel zapcore.Level `mapstructure:"stacktraceLevel"`
}

func newConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Level:           zapcore.InfoLevel,
		StacktraceLevel: zapcore.ErrorLevel,
	}

	sub := v.Sub("logger")
	if sub == nil {
		return cfg, nil
	}

	var rawCfg struct {
		Level            string   `mapstructure:"level"`
		Development      bool     `mapstructure:"development"`
		OutputPaths      []string `mapstructure:"outputPaths"`
		ErrorOutputPaths []string `mapstructure:"errorOutputPaths"`
		StacktraceLevel  string   `mapstructure:"stacktraceLevel"`
	}
	if err := sub.Unmarshal(&rawCfg); err != nil {
		return Config{}, fmt.Errorf("failed to load logger config: %w", err)
	}

	if rawCfg.Level != "" {
		level, err := zapcore.ParseLevel(rawCfg.Level)
		if err != nil {
			return Config{}, fmt.Errorf("invalid log level '%s': %w", rawCfg.Level, err)
		}
		cfg.Level = level
	}
	if rawCfg.StacktraceLevel != "" {
		level, err := zapcore.ParseLevel(rawCfg.StacktraceLevel)
		if err != nil {
			return Config{}, fmt.Errorf("invalid stacktrace level '%s': %w", rawCfg.StacktraceLevel, err)
		}
		cfg.StacktraceLevel = level
	}
	cfg.Development = rawCfg.Development
	cfg.OutputPaths = rawCfg.OutputPaths
	cfg.ErrorOutputPaths = rawCfg.ErrorOutputPaths

	return cfg, nil
}
