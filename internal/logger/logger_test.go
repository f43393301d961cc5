package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Writer: buf, Format: formatPretty, Level: level, NoColor: true})
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development"},
		{name: "empty uses pretty", environment: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(Config{Writer: &buf, Environment: tt.environment}).Info("test")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"test"`)
			} else {
				assert.Contains(t, buf.String(), "INF")
				assert.NotContains(t, buf.String(), `"msg"`)
			}
		})
	}
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Environment: "production", Format: formatPretty, NoColor: true}).Info("hello")
	assert.True(t, strings.HasSuffix(buf.String(), "INF hello\n"), buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" warning ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	def := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.False(t, def.Enabled(ctx, slog.LevelDebug))
	assert.True(t, def.Enabled(ctx, slog.LevelInfo))
}

func TestPrettyHandler_StagePrefix(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, slog.LevelInfo).WithRunID("abc123").WithStage("locate").Info("target book located", "key", "B01")

	line := buf.String()
	assert.Contains(t, line, "INF [locate] target book located")
	assert.Contains(t, line, "run_id=abc123")
	assert.Contains(t, line, "key=B01")
	assert.NotContains(t, line, "stage=")
}

func TestPrettyHandler_StageFromRecord(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, slog.LevelInfo).Info("scored", KeyStage, "score")
	assert.Contains(t, buf.String(), "[score] scored")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil).WithGroup("labels"))
	l.Info("counted", "genuine", 4)

	assert.Contains(t, buf.String(), "labels.genuine=4")

	h := NewPrettyHandler(&buf, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_Colors(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Format: formatPretty}).Error("boom")
	assert.Contains(t, buf.String(), colorRed+"ERR"+colorReset)

	buf.Reset()
	plain(&buf, slog.LevelInfo).Error("boom")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Format: formatPretty, AddSource: true, NoColor: true}).Info("here")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
		{slog.Level(12), "ERROR+4"},
	}
	for _, tt := range tests {
		got, _ := formatLevel(tt.level)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"string", slog.StringValue("F853BFAD"), "F853BFAD"},
		{"quoted", slog.StringValue("two words"), `"two words"`},
		{"int", slog.IntValue(42), "42"},
		{"float", slog.Float64Value(0.123456789), "0.123457"},
		{"time", slog.TimeValue(ts), "2026-01-02T03:04:05Z"},
		{"duration", slog.DurationValue(1500 * time.Millisecond), "1.5s"},
		{"group", slog.GroupValue(slog.Int("a", 1), slog.Bool("b", true)), "{a=1 b=true}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Format: formatJSON}).WithError(errors.New("no genuine reviews")).Error("stage failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "no genuine reviews", rec[KeyError])
	assert.Equal(t, "stage failed", rec["msg"])
}

func TestLogger_WithFieldAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatJSON}).
		WithField("subject", "STU032").
		WithFields(map[string]any{"books": 3, "reviews": 12})
	l.Info("loaded")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "STU032", rec["subject"])
	assert.EqualValues(t, 3, rec["books"])
	assert.EqualValues(t, 12, rec["reviews"])
}

func TestLogger_JSONStage(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf, Format: formatJSON}).WithStage("rank").Info("ranked")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rank", rec[KeyStage])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := plain(&buf, slog.LevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")

	assert.NotContains(t, buf.String(), " d\n")
	assert.NotContains(t, buf.String(), " i\n")
	assert.Contains(t, buf.String(), "WRN w")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
