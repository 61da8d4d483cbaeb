// Package logging builds the zap logger shared by the cli and the viewer.
package logging

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"geotext/internal/config"
)

// New returns a console logger at cfg.Level writing to cfg.File, or to
// fallback when no file is configured. An empty fallback means stderr.
func New(cfg config.Log, fallback string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}
	out := cfg.File
	if out == "" {
		out = fallback
	}
	if out == "" {
		out = "stderr"
	}

	zc := zap.NewDevelopmentConfig()
	zc.Development = false
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
