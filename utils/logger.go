package utils

import (
	"os"

	"github.com/nzai/nseq/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger create development style logger, writing to a rotated file when one is configured.
// Standard output is left to the cards.
func NewLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	lc := zap.NewDevelopmentConfig()
	lc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File == "" {
		lc.OutputPaths = []string{"stderr"}
		return lc.Build()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(lc.EncoderConfig), writer, lc.Level)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}
