package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertwitch/memfs/internal/filesystem"
	"github.com/desertwitch/memfs/internal/schema"
)

// steps returns the walkthrough: the hello round trip, hard link accounting,
// directory removal, symbolic links, sparse files, verified copies and the
// open-file table limit.
//
//nolint:funlen,maintidx
func (app *App) steps() []step {
	fs := app.fsHandler
	fd := -1

	do := func(name string, op func() error) step {
		return step{name: name, run: func(context.Context) (string, error) { return "", op() }}
	}
	fail := func(name string, want error, op func() error) step {
		return step{name: name, wantErr: want, run: func(context.Context) (string, error) { return "", op() }}
	}
	nlink := func(path string) (string, error) {
		st, err := fs.Stat(path)
		if err != nil {
			return "", err
		}

		return "nlink " + strconv.Itoa(st.Nlink), nil
	}

	return []step{
		do("mkdir /a", func() error { return fs.Mkdir("/a") }),
		do("create /a/f", func() error { return fs.Create("/a/f") }),
		{name: "open /a/f", run: func(context.Context) (string, error) {
			var err error
			fd, err = fs.Open("/a/f")

			return "fd " + strconv.Itoa(fd), err
		}},
		do(`write "hello"`, func() error { return fs.Write(fd, 5, []byte("hello")) }),
		do("seek 0", func() error { return fs.Seek(fd, 0) }),
		{name: "read 5", run: func(context.Context) (string, error) {
			data, err := fs.Read(fd, 5)

			return strconv.Quote(string(data)), err
		}},
		fail("read past end", filesystem.ErrInvalidSize, func() error {
			_, err := fs.Read(fd, 1)

			return err
		}),
		do("close", func() error { return fs.Close(fd) }),

		do("create /x", func() error { return fs.Create("/x") }),
		do("link /x /y", func() error { return fs.Link("/x", "/y") }),
		{name: "stat /y", run: func(context.Context) (string, error) { return nlink("/y") }},
		do("unlink /x", func() error { return fs.Unlink("/x") }),
		{name: "stat /y", run: func(context.Context) (string, error) { return nlink("/y") }},
		fail("stat /x", filesystem.ErrPathNotFound, func() error {
			_, err := fs.Stat("/x")

			return err
		}),
		fail("link /a /z", filesystem.ErrUnsupportedLinkTarget, func() error { return fs.Link("/a", "/z") }),

		do("mkdir /d", func() error { return fs.Mkdir("/d") }),
		do("rmdir /d", func() error { return fs.Rmdir("/d") }),
		do("mkdir /d", func() error { return fs.Mkdir("/d") }),
		do("create /d/f", func() error { return fs.Create("/d/f") }),
		fail("rmdir /d", filesystem.ErrDirectoryNotEmpty, func() error { return fs.Rmdir("/d") }),
		do("unlink /d/f", func() error { return fs.Unlink("/d/f") }),
		do("rmdir /d", func() error { return fs.Rmdir("/d") }),

		do("mkdir /docs", func() error { return fs.Mkdir("/docs") }),
		do("symlink /docs /s", func() error { return fs.Symlink("/docs", "/s") }),
		do("cd /s", func() error { return fs.Cd("/s") }),
		{name: "pwd", run: func(context.Context) (string, error) { return fs.Pwd(), nil }},
		do("create notes", func() error { return fs.Create("notes") }),
		do("truncate notes 100", func() error { return fs.Truncate("notes", 100) }),
		{name: "write at 64", run: func(context.Context) (string, error) {
			h, err := fs.Open("notes")
			if err != nil {
				return "", err
			}
			defer fs.Close(h) //nolint:errcheck

			if err := fs.Seek(h, 64); err != nil {
				return "", err
			}
			if err := fs.Write(h, 4, []byte("memo")); err != nil {
				return "", err
			}

			st, err := fs.Fstat(h)

			return fmt.Sprintf("size %d, %d block(s)", st.Size, st.Blocks), err
		}},
		do("symlink ../docs/loop loop", func() error { return fs.Symlink("../docs/loop", "loop") }),
		fail("open loop", filesystem.ErrSymlinkCycle, func() error {
			_, err := fs.Open("loop")

			return err
		}),
		fail("symlink (17 bytes)", filesystem.ErrTargetTooLong, func() error {
			return fs.Symlink("/aaaaaaaaaaaaaaaa", "long")
		}),
		do("cd /", func() error { return fs.Cd("/") }),

		{name: "copy /docs/notes /a/notes", run: func(ctx context.Context) (string, error) {
			return "", app.ioHandler.CopyFile(ctx, "/docs/notes", "/a/notes")
		}},
		{name: "checksum /a/notes", run: func(ctx context.Context) (string, error) {
			src, err := app.ioHandler.Checksum(ctx, "/docs/notes")
			if err != nil {
				return "", err
			}

			dst, err := app.ioHandler.Checksum(ctx, "/a/notes")
			if err != nil {
				return "", err
			}
			if src != dst {
				return "", fmt.Errorf("checksum differs: %s != %s", src, dst)
			}

			return dst[:16], nil
		}},

		{name: "checksum tree", run: func(ctx context.Context) (string, error) {
			var paths []string

			err := fs.Walk("/", func(path string, st schema.Stat) error {
				if st.IsRegular() {
					paths = append(paths, path)
				}

				return nil
			})
			if err != nil {
				return "", err
			}

			sums, err := app.ioHandler.ChecksumAll(ctx, paths, app.checksumWorkers)

			return fmt.Sprintf("%d file(s)", len(sums)), err
		}},

		{name: "open 80 handles", run: func(context.Context) (string, error) {
			for range schema.MaxOpenFiles {
				if _, err := fs.OpenMode("/y", schema.Read); err != nil {
					return "", err
				}
			}

			return strconv.Itoa(fs.OpenFiles()) + " open", nil
		}},
		fail("open 81st handle", filesystem.ErrTooManyOpenFiles, func() error {
			_, err := fs.Open("/y")

			return err
		}),
		{name: "close all handles", run: func(context.Context) (string, error) {
			for _, of := range fs.Snapshot().OpenFiles {
				if err := fs.Close(of.Handle); err != nil {
					return "", err
				}
			}

			return strconv.Itoa(fs.OpenFiles()) + " open", nil
		}},
	}
}
