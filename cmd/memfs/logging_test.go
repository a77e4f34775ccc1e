package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSlogManager_FanOut tests that records reach every handler enabled for
// their level.
func TestSlogManager_FanOut(t *testing.T) {
	t.Parallel()

	var infoBuf, debugBuf bytes.Buffer

	m := NewSlogManager()
	m.AddHandler("info", slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	m.AddHandler("debug", slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger := slog.New(m)
	logger.Debug("Only debug.")
	logger.Info("Both.")

	assert.NotContains(t, infoBuf.String(), "Only debug.")
	assert.Contains(t, infoBuf.String(), "Both.")
	assert.Contains(t, debugBuf.String(), "Only debug.")
	assert.Contains(t, debugBuf.String(), "Both.")

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))

	m.RemoveHandler("debug")
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))

	_, ok := m.GetHandler("debug")
	assert.False(t, ok)
}

// TestSlogManager_WithAttrs tests that attributes and groups are applied to
// existing and later added handlers.
func TestSlogManager_WithAttrs(t *testing.T) {
	t.Parallel()

	var before, after bytes.Buffer

	m := NewSlogManager()
	m.AddHandler("before", slog.NewTextHandler(&before, nil))

	derived, ok := m.WithAttrs([]slog.Attr{slog.String("fs", "memfs")}).(*SlogManager)
	require.True(t, ok)

	derived.AddHandler("after", slog.NewTextHandler(&after, nil))

	slog.New(derived).Info("Message.")

	assert.Contains(t, before.String(), "fs=memfs")
	assert.Contains(t, after.String(), "fs=memfs")

	grouped := slog.New(m.WithGroup("op"))
	before.Reset()
	grouped.Info("Grouped.", "path", "/a")

	assert.Contains(t, before.String(), "op.path=/a")
}
