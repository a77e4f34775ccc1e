package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/desertwitch/memfs/internal/filesystem"
	"github.com/desertwitch/memfs/internal/schema"
	"github.com/dustin/go-humanize"
)

// RenderListing renders the entries of the directory at path as a table. The
// sizes and link counts are taken from snap, entries missing there render
// without them.
func (h *Handler) RenderListing(path string, entries []schema.DirEntry, snap *schema.Snapshot) string {
	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		st, ok := snap.Descriptors[e.ID]

		name := e.Name
		if ok && st.IsSymlink() {
			name += " -> " + st.Target
		}

		size, nlink := "", ""
		if ok {
			size = h.formatSize(st.Size)
			nlink = strconv.Itoa(st.Nlink)
		}

		rows = append(rows, []string{
			kindLetter(e.Kind),
			strconv.FormatUint(e.ID, 10),
			nlink,
			size,
			name,
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("T", "ID", "LINKS", "SIZE", "NAME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return h.helpStyle.Padding(0, 1)
			}

			style := h.infoStyle.Padding(0, 1)
			if col == 4 { //nolint:mnd
				switch entries[row].Kind {
				case schema.KindDirectory:
					style = h.dirStyle.Padding(0, 1)
				case schema.KindSymlink:
					style = h.linkStyle.Padding(0, 1)
				case schema.KindRegularFile:
				}
			}

			return style
		})

	return h.panel("ls "+path, t.String())
}

// RenderStat renders the metadata of the descriptor at path.
func (h *Handler) RenderStat(path string, st schema.Stat) string {
	lines := []string{
		h.field("Kind", st.Kind.String()),
		h.field("ID", strconv.FormatUint(st.ID, 10)),
		h.field("Mode", fmt.Sprintf("%#o", st.Mode)),
		h.field("Links", strconv.Itoa(st.Nlink)),
		h.field("Size", h.formatSize(st.Size)),
		h.field("Blocks", fmt.Sprintf("%d (%s)", st.Blocks, h.formatSize(int64(st.Blocks)*schema.BlockSize))),
	}

	if st.IsSymlink() {
		lines = append(lines, h.field("Target", st.Target))
	}

	return h.panel("stat "+path, strings.Join(lines, "\n"))
}

// RenderTree renders the namespace below the directory id of snap, labelled
// with name.
func (h *Handler) RenderTree(snap *schema.Snapshot, id uint64, name string) string {
	return h.panel("tree "+name, h.subtree(snap, id, name).String())
}

func (h *Handler) subtree(snap *schema.Snapshot, id uint64, name string) *tree.Tree {
	t := tree.Root(h.dirStyle.Render(name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(h.helpStyle.PaddingRight(1))

	for _, e := range snap.Directories[id] {
		if e.Name == schema.SelfEntry || e.Name == schema.ParentEntry {
			continue
		}

		st := snap.Descriptors[e.ID]

		switch st.Kind {
		case schema.KindDirectory:
			t.Child(h.subtree(snap, e.ID, e.Name))
		case schema.KindSymlink:
			t.Child(h.linkStyle.Render(e.Name + " -> " + st.Target))
		case schema.KindRegularFile:
			t.Child(h.infoStyle.Render(e.Name) + " " + h.helpStyle.Render(h.formatSize(st.Size)))
		}
	}

	return t
}

// RenderUsage renders the aggregate storage information of a filesystem.
func (h *Handler) RenderUsage(u filesystem.Usage) string {
	lines := []string{
		h.field("Descriptors", humanize.Comma(int64(u.Descriptors))),
		h.field("Directories", humanize.Comma(int64(u.Directories))),
		h.field("Files", humanize.Comma(int64(u.Files))),
		h.field("Symlinks", humanize.Comma(int64(u.Symlinks))),
		h.field("Blocks", fmt.Sprintf("%s (%s)", humanize.Comma(int64(u.Blocks)), h.formatSize(u.BlockBytes))),
		h.field("Logical", h.formatSize(u.LogicalBytes)),
		h.field("Open files", fmt.Sprintf("%d/%d", u.OpenFiles, schema.MaxOpenFiles)),
	}

	return h.panel("usage", strings.Join(lines, "\n"))
}

// RenderError renders a failed step of the walkthrough together with its
// Unix error name.
func (h *Handler) RenderError(step string, err error) string {
	errno := filesystem.Errno(err)

	label := "error"
	if errno != 0 {
		label = unixErrorName(errno)
	}

	return h.errorStyle.Render(fmt.Sprintf("✗ %s: %s (%v)", step, label, err))
}

// RenderStep renders a succeeded step of the walkthrough.
func (h *Handler) RenderStep(step string, result string) string {
	if result == "" {
		return h.infoStyle.Render("✓ " + step)
	}

	return h.infoStyle.Render("✓ "+step) + " " + h.helpStyle.Render(result)
}

func (h *Handler) field(key string, value string) string {
	return h.helpStyle.Render(fmt.Sprintf("%-12s", key)) + h.infoStyle.Render(value)
}

func kindLetter(k schema.Kind) string {
	switch k {
	case schema.KindDirectory:
		return "d"
	case schema.KindSymlink:
		return "l"
	case schema.KindRegularFile:
		return "-"
	default:
		return "?"
	}
}
