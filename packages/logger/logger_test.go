package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		valid    bool
	}{
		{name: "debug", input: "debug", expected: zapcore.DebugLevel, valid: true},
		{name: "warn", input: "warn", expected: zapcore.WarnLevel, valid: true},
		{name: "error", input: "error", expected: zapcore.ErrorLevel, valid: true},
		{name: "uppercase", input: "DEBUG", expected: zapcore.DebugLevel, valid: true},
		{name: "with spaces", input: " info ", expected: zapcore.InfoLevel, valid: true},
		{name: "invalid", input: "chatty", expected: zapcore.InfoLevel, valid: false},
		{name: "empty", input: "", expected: zapcore.InfoLevel, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, valid := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestSetLevel(t *testing.T) {
	original := Level()
	defer SetLevel(original)

	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebugLevel())

	SetLevel(zapcore.ErrorLevel)
	assert.Equal(t, zapcore.ErrorLevel, Level())
	assert.False(t, IsDebugLevel())
}

func TestSetLogger(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	l := New(zapcore.DebugLevel)
	SetLogger(l)
	assert.Equal(t, l, Logger())
}

func TestWithKV(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewWithWriter(&buf, zapcore.DebugLevel))

	ctx := WithKV(context.Background(), "run_id", "abc-123")
	InfoKV(ctx, "request sent", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "request sent")
	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "200")
}

func TestLevelFiltering(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewWithWriter(&buf, zapcore.WarnLevel))

	ctx := context.Background()
	Debug(ctx, "hidden debug")
	Infof(ctx, "hidden %s", "info")
	Warnf(ctx, "shown %s", "warn")
	ErrorKV(ctx, "shown error", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
}
