package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLast(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "analyze", LevelDebug)

	ctx := wrap.WithLogCtx(context.Background(), wrap.LogCtx{Action: "load", RunID: "run-1"})
	ctx = wrap.WithDataset(ctx, "rides")
	l.Info(ctx, "dataset loaded", "rows", 3)

	rec := decodeLast(t, &buf)
	assert.Equal(t, "dataset loaded", rec["message"])
	assert.Equal(t, "analyze", rec["service"])
	assert.Equal(t, "load", rec["action"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "rides", rec["dataset"])
	assert.EqualValues(t, 3, rec["rows"])
	assert.Contains(t, rec, "timestamp")
	assert.NotContains(t, rec, "report")
}

func TestLogger_ErrorKeepsWrappedContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "analyze", LevelInfo)

	inner := wrap.WithReport(context.Background(), "fare_breakdown")
	err := wrap.Error(inner, errors.New("mean of empty set"))

	l.Error(wrap.ErrorCtx(context.Background(), err), "report failed", err)

	rec := decodeLast(t, &buf)
	assert.Equal(t, "fare_breakdown", rec["report"])
	errGroup, ok := rec["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mean of empty set", errGroup["msg"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "analyze", LevelWarn)

	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown")
	assert.Equal(t, "shown", decodeLast(t, &buf)["message"])
}

func TestValidateLogLevel(t *testing.T) {
	for _, lvl := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		assert.True(t, ValidateLogLevel(lvl), lvl)
	}
	assert.False(t, ValidateLogLevel("TRACE"))
	assert.False(t, ValidateLogLevel("info"))
}
