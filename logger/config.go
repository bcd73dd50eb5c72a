package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how to build a logger.
type Config struct {
	// Format is one of "console", "logfmt" or "json".
	Format string
	Level  zapcore.Level
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "console",
	}
}

// New constructs a logger writing to w according to the config.
func (c Config) New(w io.Writer) *zap.Logger {
	return zap.New(zapcore.NewCore(
		newEncoder(c.Format),
		zapcore.Lock(zapcore.AddSync(w)),
		c.Level,
	))
}
