package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultLogLevel keeps stderr quiet unless something goes wrong.
const defaultLogLevel = zapcore.WarnLevel

// newLogger builds a console logger writing to w at the named level.
// An empty level means warn.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl := defaultLogLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("%w: log level %q", ErrUsage, level)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)
	return zap.New(core), nil
}
