package ui

import (
	"strings"
	"sync"
)

type messageSender interface {
	Send(msg string)
}

// LogWriter is an implementation of an [io.Writer], for use inside a
// [slog.Handler], that forwards any logs to a message sender such as a
// [Transcript].
type LogWriter struct {
	sender   messageSender
	doneChan chan struct{}
	logChan  chan string
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewLogWriter returns a pointer to a new [LogWriter]. It also starts the
// internal log processing function, which should eventually be stopped e.g.
// with a deferred [LogWriter.Stop] call.
func NewLogWriter(sender messageSender) *LogWriter {
	wr := &LogWriter{
		sender:   sender,
		doneChan: make(chan struct{}),
		logChan:  make(chan string, 1000), //nolint:mnd
	}

	wr.wg.Add(1)
	go wr.processLogs()

	return wr
}

// Stop stops the log message processing after forwarding the logs that are
// already buffered. Logs written after calling this method are discarded.
// Calling it more than once has no further effect.
func (wr *LogWriter) Stop() {
	wr.stopOnce.Do(func() {
		close(wr.doneChan)
	})
	wr.wg.Wait()
}

// processLogs forwards any received logs to the message sender. The logs are
// received from the internal buffered channel, filled by [LogWriter.Write].
func (wr *LogWriter) processLogs() {
	defer wr.wg.Done()

	for {
		select {
		case <-wr.doneChan:
			for {
				select {
				case msg := <-wr.logChan:
					wr.sender.Send(msg)
				default:
					return
				}
			}
		case msg := <-wr.logChan:
			wr.sender.Send(msg)
		}
	}
}

// Write receives a byte slice containing one or more log messages from e.g. a
// [slog.Handler]. Every line is sent as its own message into a buffered
// channel, received by [LogWriter.processLogs].
func (wr *LogWriter) Write(p []byte) (int, error) {
	select {
	case <-wr.doneChan:
		return len(p), nil
	default:
	}

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case <-wr.doneChan:
			return len(p), nil
		case wr.logChan <- line:
		}
	}

	return len(p), nil
}

// Transcript collects log messages for rendering them at a later time. It is
// safe for concurrent use.
type Transcript struct {
	mu    sync.Mutex
	lines []string
}

// Send appends msg to the [Transcript].
func (t *Transcript) Send(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, msg)
}

// Lines returns a copy of the collected messages.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.lines))
	copy(out, t.lines)

	return out
}

// RenderTranscript renders the collected messages of t in a panel.
func (h *Handler) RenderTranscript(t *Transcript) string {
	lines := t.Lines()
	if len(lines) == 0 {
		return h.panel("log", h.helpStyle.Render("(empty)"))
	}

	for i, line := range lines {
		lines[i] = h.helpStyle.Render(line)
	}

	return h.panel("log", strings.Join(lines, "\n"))
}
