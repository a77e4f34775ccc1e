// Package ui renders filesystem listings, metadata, trees and usage as
// styled, non-interactive text panels.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// Handler is the principal implementation of the rendering [Handler].
type Handler struct {
	renderer   *lipgloss.Renderer
	humanSizes bool

	titleStyle  lipgloss.Style
	borderStyle lipgloss.Style
	infoStyle   lipgloss.Style
	helpStyle   lipgloss.Style
	dirStyle    lipgloss.Style
	linkStyle   lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewHandler returns a pointer to a new rendering [Handler] for output to w.
// With noColor all output is plain, with humanSizes sizes are rendered in
// binary units instead of bytes.
func NewHandler(w io.Writer, noColor bool, humanSizes bool) *Handler {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Handler{
		renderer:   r,
		humanSizes: humanSizes,

		titleStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),

		borderStyle: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1),

		infoStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		helpStyle: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		dirStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),

		linkStyle: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),

		errorStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")),
	}
}

// panel renders content in a bordered box headed by title.
func (h *Handler) panel(title string, content string) string {
	return h.borderStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		h.titleStyle.Render(title),
		"",
		content,
	))
}

func (h *Handler) formatSize(size int64) string {
	if size < 0 {
		size = 0
	}

	if h.humanSizes {
		return humanize.IBytes(uint64(size))
	}

	return fmt.Sprintf("%d B", size)
}
