package io

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/memfs/internal/schema"
	"github.com/zeebo/blake3"
)

// Checksum returns the hex-encoded blake3 sum of the regular file at path.
func (i *Handler) Checksum(ctx context.Context, path string) (string, error) {
	fd, err := i.FSOps.OpenMode(path, schema.Read)
	if err != nil {
		return "", fmt.Errorf("(io-checksum) failed to open file: %w", err)
	}
	defer i.FSOps.Close(fd) //nolint:errcheck

	hasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: NewReader(i.FSOps, fd),
	}

	if _, err := io.CopyBuffer(hasher, ctxReader, make([]byte, chunkSize)); err != nil {
		return "", fmt.Errorf("(io-checksum) failed to hash file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// CopyFile copies the regular file at src to the new path dst. A symbolic link
// at src is not followed and fails with [ErrNotRegular]. The data is
// written to an intermediate file next to dst, read back and verified against
// the source by blake3 sums and only then linked to dst. On any failure the
// intermediate file is removed and dst is left untouched.
func (i *Handler) CopyFile(ctx context.Context, src, dst string) error {
	if err := i.copyFile(ctx, src, dst); err != nil {
		return fmt.Errorf("(io-copy) %w", err)
	}

	slog.Debug("Copied regular file.",
		"src", src,
		"dst", dst,
	)

	return nil
}

func (i *Handler) copyFile(ctx context.Context, src, dst string) error {
	var transferComplete bool

	st, err := i.FSOps.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}
	if !st.IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	srcFd, err := i.FSOps.OpenMode(src, schema.Read)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer i.FSOps.Close(srcFd) //nolint:errcheck

	if _, err := i.FSOps.Stat(dst); err == nil {
		return ErrRenameExists
	}

	tmpPath := dst + ".memfs"

	if err := i.FSOps.Create(tmpPath); err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", tmpPath, err)
	}
	defer func() {
		if !transferComplete {
			i.FSOps.Unlink(tmpPath) //nolint:errcheck
		}
	}()

	dstFd, err := i.FSOps.OpenMode(tmpPath, schema.ReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open destination file %s: %w", tmpPath, err)
	}
	defer i.FSOps.Close(dstFd) //nolint:errcheck

	srcHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(NewReader(i.FSOps, srcFd), srcHasher),
	}

	if _, err := io.CopyBuffer(NewWriter(i.FSOps, dstFd), ctxReader, make([]byte, chunkSize)); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("transfer canceled: %w", err)
		}

		return fmt.Errorf("failed to copy file: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))

	// The destination is read back rather than hashed in flight.
	dstChecksum, err := i.Checksum(ctx, tmpPath)
	if err != nil {
		return fmt.Errorf("failed to verify destination file: %w", err)
	}

	if srcChecksum != dstChecksum {
		return fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if _, err := i.FSOps.Stat(dst); err == nil {
		return ErrRenameExists
	}

	if err := i.FSOps.Link(tmpPath, dst); err != nil {
		return fmt.Errorf("failed to link temporary file to destination file: %w", err)
	}

	if err := i.FSOps.Unlink(tmpPath); err != nil {
		return fmt.Errorf("failed to remove temporary file: %w", err)
	}

	transferComplete = true

	return nil
}
