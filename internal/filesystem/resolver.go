package filesystem

import (
	"fmt"
	"slices"

	"github.com/desertwitch/memfs/internal/schema"
)

// resolution is the outcome of walking a path: the directory containing the
// final component, the descriptor the final component names (nil if there is
// no such entry) and the final component's name. The root path resolves to
// the root as both parent and target, with an empty name.
type resolution struct {
	parent *descriptor
	target *descriptor
	name   string
}

// resolve walks a raw path against the namespace. Symbolic links met before
// the final component are always followed; a symbolic link as the final
// component is only followed with followTerminal, otherwise it is returned as
// the target. Following a link substitutes its target for the components
// consumed so far and restarts the walk from the root, at most
// [schema.MaxSymlinkHops] times.
func (f *Handler) resolve(raw string, followTerminal bool) (resolution, error) {
	p, err := normalizePath(raw, f.cwdPath)
	if err != nil {
		return resolution{}, err
	}

	return f.walk(p, followTerminal)
}

// walk resolves a clean absolute path, see [Handler.resolve].
func (f *Handler) walk(p string, followTerminal bool) (resolution, error) {
	root := f.arena.get(f.root)
	hops := 0

restart:
	for {
		if p == schema.RootPath {
			return resolution{parent: root, target: root}, nil
		}

		comps := splitPath(p)
		dir := root

		for i, name := range comps {
			last := i == len(comps)-1

			child := f.arena.get(dir.entries[name])
			if child == nil {
				if !last {
					return resolution{}, fmt.Errorf("%w: %q", ErrPathNotFound, joinPath(comps[:i+1]))
				}

				return resolution{parent: dir, name: name}, nil
			}

			switch child.kind {
			case schema.KindDirectory:
				if last {
					return resolution{parent: dir, target: child, name: name}, nil
				}
				dir = child

			case schema.KindRegularFile:
				if !last {
					return resolution{}, fmt.Errorf("%w: %q", ErrInvalidPathComponent, joinPath(comps[:i+1]))
				}

				return resolution{parent: dir, target: child, name: name}, nil

			case schema.KindSymlink:
				if last && !followTerminal {
					return resolution{parent: dir, target: child, name: name}, nil
				}

				hops++
				if hops > schema.MaxSymlinkHops {
					return resolution{}, fmt.Errorf("%w: more than %d hops", ErrSymlinkCycle, schema.MaxSymlinkHops)
				}

				p = substituteLink(child.target, comps[:i], comps[i+1:])

				continue restart
			}
		}

		// Every component either descends into a directory or returns, and
		// the final one always returns.
		return resolution{}, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
}

// pathOf returns the absolute path of a directory by walking its ".."
// back-links up to the root and looking up each directory's name in its
// parent's entries.
func (f *Handler) pathOf(dir *descriptor) string {
	var comps []string

	for dir.id != f.root {
		parent := f.arena.get(dir.parentID())
		if parent == nil {
			break
		}

		comps = append(comps, nameIn(parent, dir.id))
		dir = parent
	}

	slices.Reverse(comps)

	return joinPath(comps)
}

// nameIn returns the name under which id is entered in dir, ignoring the "."
// and ".." entries.
func nameIn(dir *descriptor, id uint64) string {
	for name, childID := range dir.entries {
		if childID == id && name != schema.SelfEntry && name != schema.ParentEntry {
			return name
		}
	}

	return ""
}
