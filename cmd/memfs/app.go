package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/desertwitch/memfs/internal/filesystem"
	fsio "github.com/desertwitch/memfs/internal/io"
	"github.com/desertwitch/memfs/internal/ui"
	"github.com/desertwitch/memfs/internal/validation"
)

// ErrStepsFailed occurs when at least one step of the walkthrough did not
// produce its expected outcome.
var ErrStepsFailed = errors.New("walkthrough steps failed")

// step is a single operation of the walkthrough. A step with a non-nil
// wantErr succeeds only if it fails with that error.
type step struct {
	name    string
	run     func(ctx context.Context) (string, error)
	wantErr error
}

type App struct {
	fsHandler *filesystem.Handler
	ioHandler *fsio.Handler
	uiHandler *ui.Handler
	out       io.Writer

	checksumWorkers int
}

func NewApp(fsHandler *filesystem.Handler,
	ioHandler *fsio.Handler,
	uiHandler *ui.Handler,
	out io.Writer,
	checksumWorkers int,
) *App {
	return &App{
		fsHandler: fsHandler,
		ioHandler: ioHandler,
		uiHandler: uiHandler,
		out:       out,

		checksumWorkers: checksumWorkers,
	}
}

// Launch runs the walkthrough against the filesystem, printing every step
// followed by the resulting tree, usage and an integrity check.
func (app *App) Launch(ctx context.Context) error {
	failed := 0

	for _, s := range app.steps() {
		if ctx.Err() != nil {
			return fmt.Errorf("(app) %w", ctx.Err())
		}

		result, err := s.run(ctx)

		switch {
		case s.wantErr == nil && err == nil:
			fmt.Fprintln(app.out, app.uiHandler.RenderStep(s.name, result))

		case s.wantErr != nil && errors.Is(err, s.wantErr):
			fmt.Fprintln(app.out, app.uiHandler.RenderStep(s.name, "failed as expected: "+err.Error()))

		case err == nil:
			failed++
			fmt.Fprintln(app.out, app.uiHandler.RenderError(s.name, fmt.Errorf("%w: succeeded unexpectedly", s.wantErr)))

		default:
			failed++
			fmt.Fprintln(app.out, app.uiHandler.RenderError(s.name, err))
		}
	}

	if err := app.report(); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("(app) %w: %d", ErrStepsFailed, failed)
	}

	return nil
}

// report prints the final state of the filesystem.
func (app *App) report() error {
	snap := app.fsHandler.Snapshot()

	fmt.Fprintln(app.out, app.uiHandler.RenderTree(snap, snap.Root, "/"))

	entries, err := app.fsHandler.Ls("/")
	if err != nil {
		return fmt.Errorf("failed to list root: %w", err)
	}
	fmt.Fprintln(app.out, app.uiHandler.RenderListing("/", entries, snap))

	st, err := app.fsHandler.Stat("/docs/notes")
	if err == nil {
		fmt.Fprintln(app.out, app.uiHandler.RenderStat("/docs/notes", st))
	}

	fmt.Fprintln(app.out, app.uiHandler.RenderUsage(app.fsHandler.Usage()))

	if err := validation.ValidateSnapshot(snap); err != nil {
		fmt.Fprintln(app.out, app.uiHandler.RenderError("integrity check", err))

		return fmt.Errorf("integrity check failed: %w", err)
	}
	fmt.Fprintln(app.out, app.uiHandler.RenderStep("integrity check", "consistent"))

	return nil
}
