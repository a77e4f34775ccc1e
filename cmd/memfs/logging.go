package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/desertwitch/memfs/internal/configuration"
	"github.com/lmittmann/tint"
)

// SlogManager is a [slog.Handler] fanning out every record to a set of named
// handlers, which can be added and removed at runtime.
type SlogManager struct {
	sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

// NewSlogManager returns a pointer to a new [SlogManager] without handlers.
func NewSlogManager() *SlogManager {
	return &SlogManager{
		handlers: make(map[string]slog.Handler),
	}
}

func (m *SlogManager) Enabled(ctx context.Context, level slog.Level) bool {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (m *SlogManager) Handle(ctx context.Context, r slog.Record) error {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}

	return nil
}

func (m *SlogManager) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	newLm := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append(append([]slog.Attr{}, m.attrs...), attrs...),
		groups:   append([]string{}, m.groups...),
	}

	for name, h := range m.handlers {
		newLm.handlers[name] = h.WithAttrs(attrs)
	}

	return newLm
}

func (m *SlogManager) WithGroup(name string) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	newLm := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append([]slog.Attr{}, m.attrs...),
		groups:   append(append([]string{}, m.groups...), name),
	}

	for handlerName, h := range m.handlers {
		newLm.handlers[handlerName] = h.WithGroup(name)
	}

	return newLm
}

//nolint:unparam
func (m *SlogManager) GetHandler(name string) (slog.Handler, bool) {
	m.RLock()
	defer m.RUnlock()

	h, ok := m.handlers[name]

	return h, ok
}

// AddHandler adds handler under name, replacing any handler of that name. The
// attributes and groups already applied to the [SlogManager] are applied to
// the handler.
func (m *SlogManager) AddHandler(name string, handler slog.Handler) {
	m.Lock()
	defer m.Unlock()

	h := handler
	if len(m.attrs) > 0 {
		h = h.WithAttrs(m.attrs)
	}

	for _, group := range m.groups {
		h = h.WithGroup(group)
	}

	m.handlers[name] = h
}

func (m *SlogManager) RemoveHandler(name string) {
	m.Lock()
	defer m.Unlock()

	delete(m.handlers, name)
}

// setupLogging installs a [SlogManager] as the default logger, holding a tint
// console handler and, if configured, a JSON handler appending to the log
// file. The returned function closes the log file.
func setupLogging(config *configuration.AppConfiguration, console io.Writer) (*SlogManager, func(), error) {
	manager := NewSlogManager()

	manager.AddHandler("console", tint.NewHandler(console, &tint.Options{
		Level:      config.LogLevel,
		TimeFormat: config.LogTimeFormat,
		NoColor:    config.NoColor,
	}))

	closer := func() {}

	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:mnd
		if err != nil {
			return nil, closer, fmt.Errorf("failed to open log file: %w", err)
		}

		manager.AddHandler("file", slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))

		closer = func() {
			manager.RemoveHandler("file")
			f.Close()
		}
	}

	slog.SetDefault(slog.New(manager))

	return manager, closer, nil
}
