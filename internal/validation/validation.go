// Package validation checks the structural integrity of a filesystem
// [schema.Snapshot]: link counts against actual references, the shape of
// directory self and parent entries, the tree property of directories, block
// accounting of regular files and the open-file table.
package validation

import (
	"errors"
	"fmt"

	"github.com/desertwitch/memfs/internal/schema"
)

// ValidateSnapshot checks every integrity rule over snap and returns all
// violations joined into one error, or nil if the snapshot is consistent.
func ValidateSnapshot(snap *schema.Snapshot) error {
	var errs []error

	if root, ok := snap.Descriptors[snap.Root]; !ok || !root.IsDir() {
		return fmt.Errorf("(validation) %w: id %d", ErrNoRoot, snap.Root)
	}

	if cwd, ok := snap.Descriptors[snap.Cwd]; !ok || !cwd.IsDir() {
		errs = append(errs, fmt.Errorf("(validation) %w: id %d", ErrBadCwd, snap.Cwd))
	}

	errs = append(errs, validateDirectories(snap)...)
	errs = append(errs, validateLinkCounts(snap)...)
	errs = append(errs, validateContents(snap)...)
	errs = append(errs, validateOpenFiles(snap)...)

	return errors.Join(errs...)
}

func validateDirectories(snap *schema.Snapshot) []error {
	var errs []error

	// parents counts for each directory the named entries referencing it.
	parents := make(map[uint64]int)

	for id, entries := range snap.Directories {
		self, parent := uint64(0), uint64(0)

		for _, e := range entries {
			switch e.Name {
			case schema.SelfEntry:
				self = e.ID
			case schema.ParentEntry:
				parent = e.ID
			default:
				if st, ok := snap.Descriptors[e.ID]; ok && st.IsDir() {
					parents[e.ID]++
				}
			}
		}

		if self != id {
			errs = append(errs, fmt.Errorf("(validation) %w: id %d", ErrBadSelfEntry, id))
		}

		if id == snap.Root {
			if parent != id {
				errs = append(errs, fmt.Errorf("(validation) %w: root id %d", ErrBadParentEntry, id))
			}

			continue
		}

		if !listsChild(snap, parent, id) {
			errs = append(errs, fmt.Errorf("(validation) %w: id %d", ErrBadParentEntry, id))
		}
	}

	for id, n := range parents {
		if n > 1 {
			errs = append(errs, fmt.Errorf("(validation) %w: id %d has %d", ErrDirectoryHardlink, id, n))
		}
	}

	return errs
}

func listsChild(snap *schema.Snapshot, parent, child uint64) bool {
	entries, ok := snap.Directories[parent]
	if !ok {
		return false
	}

	for _, e := range entries {
		if e.ID == child && e.Name != schema.SelfEntry && e.Name != schema.ParentEntry {
			return true
		}
	}

	return false
}

func validateLinkCounts(snap *schema.Snapshot) []error {
	var errs []error

	refs := make(map[uint64]int)

	for id, entries := range snap.Directories {
		for _, e := range entries {
			if _, ok := snap.Descriptors[e.ID]; !ok {
				errs = append(errs, fmt.Errorf("(validation) %w: %q in id %d", ErrDanglingEntry, e.Name, id))

				continue
			}
			refs[e.ID]++
		}
	}

	for id, st := range snap.Descriptors {
		if refs[id] != st.Nlink {
			errs = append(errs, fmt.Errorf("(validation) %w: id %d has nlink %d but %d references",
				ErrLinkCountMismatch, id, st.Nlink, refs[id]))
		}
	}

	return errs
}

func validateContents(snap *schema.Snapshot) []error {
	var errs []error

	for id, st := range snap.Descriptors {
		switch st.Kind {
		case schema.KindRegularFile:
			limit := st.Size / schema.BlockSize
			if st.Size%schema.BlockSize != 0 {
				limit++
			}
			if int64(st.Blocks) > limit {
				errs = append(errs, fmt.Errorf("(validation) %w: id %d holds %d blocks for size %d",
					ErrBlocksBeyondSize, id, st.Blocks, st.Size))
			}

		case schema.KindSymlink:
			if st.Target == "" || len(st.Target) > schema.BlockSize || st.Size != int64(len(st.Target)) {
				errs = append(errs, fmt.Errorf("(validation) %w: id %d", ErrBadSymlink, id))
			}

		case schema.KindDirectory:
		}
	}

	return errs
}

func validateOpenFiles(snap *schema.Snapshot) []error {
	var errs []error

	if len(snap.OpenFiles) > schema.MaxOpenFiles {
		errs = append(errs, fmt.Errorf("(validation) %w: %d entries", ErrTooManyOpenFiles, len(snap.OpenFiles)))
	}

	for _, of := range snap.OpenFiles {
		if of.Handle < 0 || of.Handle >= schema.MaxOpenFiles {
			errs = append(errs, fmt.Errorf("(validation) %w: handle %d", ErrTooManyOpenFiles, of.Handle))
		}

		st, ok := snap.Descriptors[of.ID]
		if !ok || !st.IsRegular() {
			errs = append(errs, fmt.Errorf("(validation) %w: handle %d references id %d", ErrBadOpenFile, of.Handle, of.ID))

			continue
		}

		if of.Offset < 0 || of.Offset > st.Size {
			errs = append(errs, fmt.Errorf("(validation) %w: handle %d at offset %d of size %d",
				ErrBadOpenFile, of.Handle, of.Offset, st.Size))
		}
	}

	return errs
}
