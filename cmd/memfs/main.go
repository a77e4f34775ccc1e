// Command memfs runs a walkthrough of the in-memory filesystem and prints
// the rendered results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/desertwitch/memfs/internal/configuration"
	"github.com/desertwitch/memfs/internal/filesystem"
	fsio "github.com/desertwitch/memfs/internal/io"
	"github.com/desertwitch/memfs/internal/ui"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile = flag.String("config", "", "read configuration from this file")
	debug      = flag.Bool("debug", false, "log at debug level (overrides configuration)")
	noColor    = flag.Bool("no-color", false, "disable colored output (overrides configuration)")
	showLog    = flag.Bool("show-log", false, "print the debug log of the walkthrough")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func loadConfiguration() (*configuration.AppConfiguration, error) {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	var files []string
	if *configFile != "" {
		files = append(files, *configFile)
	}

	config, err := configHandler.LoadAppConfiguration(files...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if *debug {
		config.LogLevel = slog.LevelDebug
	}
	if *noColor {
		config.NoColor = true
	}

	return config, nil
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()

	config, err := loadConfiguration()
	if err != nil {
		slog.Error("Failed to load configuration.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	logManager, closeLog, err := setupLogging(config, os.Stderr)
	if err != nil {
		slog.Error("Failed to set up logging.",
			"err", err,
		)
		ExitCode = 1

		return
	}
	defer closeLog()

	var transcript *ui.Transcript
	var logWriter *ui.LogWriter

	if *showLog {
		transcript = &ui.Transcript{}

		logWriter = ui.NewLogWriter(transcript)
		defer logWriter.Stop()

		logManager.AddHandler("transcript", slog.NewTextHandler(logWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.Attr{}
				}

				return a
			},
		}))
	}

	setupSignalHandlers(cancel)

	memObserver := newMemoryObserver(ctx)
	defer memObserver.Stop()

	cpuProfiler := NewCPUProfiler(ctx, *cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := NewAllocProfiler(ctx, *memprofile)
	defer allocProfiler.Stop()

	slog.Info("Starting walkthrough.",
		"version", Version,
	)

	fsHandler := filesystem.NewHandler()
	ioHandler := fsio.NewHandler(fsHandler)
	uiHandler := ui.NewHandler(os.Stdout, config.NoColor, config.HumanSizes)

	app := NewApp(fsHandler, ioHandler, uiHandler, os.Stdout, config.ChecksumWorkers)
	launchErr := app.Launch(ctx)

	if transcript != nil {
		logManager.RemoveHandler("transcript")
		logWriter.Stop()
		fmt.Fprintln(os.Stdout, uiHandler.RenderTranscript(transcript))
	}

	if launchErr != nil {
		slog.Error("Walkthrough failed.",
			"err", launchErr,
		)
		ExitCode = 1

		return
	}

	slog.Info("Walkthrough completed.")
}
