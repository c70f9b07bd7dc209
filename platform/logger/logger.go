package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logger struct {
	zap *zap.Logger
}

var (
	globalMu sync.RWMutex
	// Until Init runs, messages go to stderr so start-up failures are visible.
	global = &logger{zap: zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.InfoLevel,
	))}
)

// Init builds the process-wide logger. level is one of debug, info, warn, error.
func Init(level string, asJSON bool) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if asJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(lvl))

	globalMu.Lock()
	global = &logger{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
	globalMu.Unlock()

	return nil
}

// SetNopLogger silences all output. Used by tests.
func SetNopLogger() {
	globalMu.Lock()
	global = &logger{zap: zap.NewNop()}
	globalMu.Unlock()
}

func L() *logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func With(fields ...Field) *logger { return L().With(fields...) }

func Sync() error { return L().zap.Sync() }

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }

func (l *logger) With(fields ...Field) *logger {
	return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Debug(_ context.Context, msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *logger) Info(_ context.Context, msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *logger) Warn(_ context.Context, msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *logger) Error(_ context.Context, msg string, fields ...Field) { l.zap.Error(msg, fields...) }

// NoopLogger satisfies the small logger interfaces of platform packages.
type NoopLogger struct{}

func (NoopLogger) Info(context.Context, string, ...Field)  {}
func (NoopLogger) Warn(context.Context, string, ...Field)  {}
func (NoopLogger) Error(context.Context, string, ...Field) {}
