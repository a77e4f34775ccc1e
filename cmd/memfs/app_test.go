package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/desertwitch/memfs/internal/configuration"
	"github.com/desertwitch/memfs/internal/filesystem"
	fsio "github.com/desertwitch/memfs/internal/io"
	"github.com/desertwitch/memfs/internal/ui"
	"github.com/desertwitch/memfs/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(out *bytes.Buffer) (*App, *filesystem.Handler) {
	fsHandler := filesystem.NewHandler()

	return NewApp(
		fsHandler,
		fsio.NewHandler(fsHandler),
		ui.NewHandler(out, true, false),
		out,
		configuration.DefaultChecksumWorkers,
	), fsHandler
}

// TestApp_Launch_Success tests that every walkthrough step has its expected
// outcome and the filesystem is left consistent.
func TestApp_Launch_Success(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	app, fsHandler := newTestApp(out)

	require.NoError(t, app.Launch(context.Background()))

	text := out.String()
	assert.Contains(t, text, `"hello"`)
	assert.Contains(t, text, "fd 0")
	assert.Contains(t, text, "nlink 2")
	assert.Contains(t, text, "nlink 1")
	assert.Contains(t, text, "failed as expected")
	assert.Contains(t, text, "4 file(s)")
	assert.Contains(t, text, "80 open")
	assert.Contains(t, text, "integrity check")
	assert.NotContains(t, text, "✗")

	assert.Equal(t, 0, fsHandler.OpenFiles())
	assert.Equal(t, "/", fsHandler.Pwd())
	require.NoError(t, validation.ValidateSnapshot(fsHandler.Snapshot()))

	_, err := fsHandler.Stat("/a/notes")
	require.NoError(t, err)
}

// TestApp_Launch_Fail tests that a walkthrough on a filesystem not in its
// initial state reports the failing steps.
func TestApp_Launch_Fail(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	app, fsHandler := newTestApp(out)

	require.NoError(t, fsHandler.Mkdir("/a"))

	err := app.Launch(context.Background())
	require.ErrorIs(t, err, ErrStepsFailed)
	assert.Contains(t, out.String(), "EEXIST")
}

// TestApp_Launch_Canceled tests that a canceled context stops the
// walkthrough.
func TestApp_Launch_Canceled(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	app, _ := newTestApp(out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, app.Launch(ctx), context.Canceled)
	assert.Empty(t, out.String())
}
