package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps a normal run quiet.
const DefaultLevel = zapcore.WarnLevel

type ctxKey struct{}

var (
	mu           sync.RWMutex
	globalLogger *zap.SugaredLogger
	atomicLevel  = zap.NewAtomicLevelAt(DefaultLevel)
)

func init() {
	SetLogger(New(atomicLevel))
}

// New builds a console logger writing to stderr. A nil level uses the
// package level, which SetLevel adjusts.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	return NewWithWriter(os.Stderr, level, options...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = atomicLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel maps a level name to a zap level. Unknown names yield
// InfoLevel and false.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, false
	}
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, false
	}
	return level, true
}

func Level() zapcore.Level {
	return atomicLevel.Level()
}

func SetLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

func IsDebugLevel() bool {
	return atomicLevel.Enabled(zapcore.DebugLevel)
}

func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	globalLogger = l
	mu.Unlock()
}

// WithKV returns a context whose logger carries the given fields.
func WithKV(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, fromContext(ctx).With(keysAndValues...))
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	return Logger()
}

func Debug(ctx context.Context, args ...any) {
	fromContext(ctx).Debug(args...)
}

func Debugf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Debugf(template, args...)
}

func DebugKV(ctx context.Context, msg string, keysAndValues ...any) {
	fromContext(ctx).Debugw(msg, keysAndValues...)
}

func Info(ctx context.Context, args ...any) {
	fromContext(ctx).Info(args...)
}

func Infof(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Infof(template, args...)
}

func InfoKV(ctx context.Context, msg string, keysAndValues ...any) {
	fromContext(ctx).Infow(msg, keysAndValues...)
}

func Warn(ctx context.Context, args ...any) {
	fromContext(ctx).Warn(args...)
}

func Warnf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Warnf(template, args...)
}

func WarnKV(ctx context.Context, msg string, keysAndValues ...any) {
	fromContext(ctx).Warnw(msg, keysAndValues...)
}

func Error(ctx context.Context, args ...any) {
	fromContext(ctx).Error(args...)
}

func Errorf(ctx context.Context, template string, args ...any) {
	fromContext(ctx).Errorf(template, args...)
}

func ErrorKV(ctx context.Context, msg string, keysAndValues ...any) {
	fromContext(ctx).Errorw(msg, keysAndValues...)
}
