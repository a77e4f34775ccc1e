package filesystem_test

import (
	"fmt"
	"testing"

	"github.com/desertwitch/memfs/internal/filesystem"
	"github.com/desertwitch/memfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLink_Fail tests the failure conditions of hard linking.
func TestLink_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		dst  string
		err  error
	}{
		{name: "Fail_SourceMissing", src: "/nope", dst: "/x", err: filesystem.ErrPathNotFound},
		{name: "Fail_SourceDirectory", src: "/d", dst: "/x", err: filesystem.ErrUnsupportedLinkTarget},
		{name: "Fail_SourceRoot", src: "/", dst: "/x", err: filesystem.ErrUnsupportedLinkTarget},
		{name: "Fail_DestinationExists", src: "/f", dst: "/d", err: filesystem.ErrPathAlreadyExists},
		{name: "Fail_DestinationParentMissing", src: "/f", dst: "/n/x", err: filesystem.ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := filesystem.NewHandler()
			require.NoError(t, fs.Mkdir("/d"))
			require.NoError(t, fs.Create("/f"))

			before := fs.Snapshot()

			require.ErrorIs(t, fs.Link(tt.src, tt.dst), tt.err)
			assert.Equal(t, before, fs.Snapshot())
		})
	}
}

// TestLink_Symlink_Success tests that hard linking a symbolic link links the
// link itself.
func TestLink_Symlink_Success(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()
	require.NoError(t, fs.Create("/f"))
	require.NoError(t, fs.Symlink("/f", "/s"))
	require.NoError(t, fs.Link("/s", "/s2"))

	st, err := fs.Stat("/s2")
	require.NoError(t, err)
	assert.True(t, st.IsSymlink())
	assert.Equal(t, 2, st.Nlink)

	f, err := fs.Stat("/f")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Nlink)

	require.NoError(t, fs.Unlink("/s"))

	st, err = fs.Stat("/s2")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Nlink)

	requireConsistent(t, fs)
}

// TestUnlink tests the removal of directory entries.
func TestUnlink(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()
	require.NoError(t, fs.Mkdir("/d"))
	require.NoError(t, fs.Create("/f"))
	require.NoError(t, fs.Symlink("/f", "/l"))

	require.ErrorIs(t, fs.Unlink("/d"), filesystem.ErrIsADirectory)
	require.ErrorIs(t, fs.Unlink("/nope"), filesystem.ErrPathNotFound)
	require.ErrorIs(t, fs.Unlink("/f/x"), filesystem.ErrInvalidPathComponent)

	require.NoError(t, fs.Unlink("/l"))

	_, err := fs.Stat("/l")
	require.ErrorIs(t, err, filesystem.ErrPathNotFound)

	f, err := fs.Stat("/f")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Nlink)

	requireConsistent(t, fs)
}

// TestUnlink_OpenFile_Success tests that an unlinked file stays usable
// through its open handle and is released on the last close.
func TestUnlink_OpenFile_Success(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()
	require.NoError(t, fs.Create("/f"))

	fd, err := fs.Open("/f")
	require.NoError(t, err)
	require.NoError(t, fs.Write(fd, 4, []byte("data")))

	require.NoError(t, fs.Unlink("/f"))

	_, err = fs.Stat("/f")
	require.ErrorIs(t, err, filesystem.ErrPathNotFound)

	st, err := fs.Fstat(fd)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Nlink)
	assert.Equal(t, int64(4), st.Size)

	require.NoError(t, fs.Seek(fd, 0))
	data, err := fs.Read(fd, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	assert.Equal(t, 2, fs.Usage().Descriptors)
	requireConsistent(t, fs)

	require.NoError(t, fs.Close(fd))
	assert.Equal(t, 1, fs.Usage().Descriptors)

	require.NoError(t, fs.Create("/g"))
	g, err := fs.Stat("/g")
	require.NoError(t, err)
	assert.Equal(t, st.ID, g.ID)

	requireConsistent(t, fs)
}

// TestSymlink_Success tests symbolic link creation, including dangling
// targets.
func TestSymlink_Success(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()

	require.NoError(t, fs.Symlink("/nowhere", "/l"))

	st, err := fs.Stat("/l")
	require.NoError(t, err)
	assert.True(t, st.IsSymlink())
	assert.Equal(t, "/nowhere", st.Target)
	assert.Equal(t, int64(8), st.Size)
	assert.Equal(t, 1, st.Nlink)
	assert.Equal(t, 0, st.Blocks)

	_, err = fs.Open("/l")
	require.ErrorIs(t, err, filesystem.ErrPathNotFound)

	require.NoError(t, fs.Create("/l"))

	_, err = fs.Stat("/nowhere")
	require.NoError(t, err)

	requireConsistent(t, fs)
}

// TestSymlink_Fail tests the failure conditions of symbolic link creation.
func TestSymlink_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		path   string
		err    error
	}{
		{name: "Fail_EmptyTarget", target: "", path: "/l", err: filesystem.ErrInvalidPath},
		{name: "Fail_TargetTooLong", target: "/aaaaaaaaaaaaaaaa", path: "/l", err: filesystem.ErrTargetTooLong},
		{name: "Fail_Exists", target: "/x", path: "/f", err: filesystem.ErrPathAlreadyExists},
		{name: "Fail_ParentMissing", target: "/x", path: "/n/l", err: filesystem.ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := filesystem.NewHandler()
			require.NoError(t, fs.Create("/f"))

			before := fs.Snapshot()

			require.ErrorIs(t, fs.Symlink(tt.target, tt.path), tt.err)
			assert.Equal(t, before, fs.Snapshot())
		})
	}
}

// TestSymlink_MaxTarget_Success tests a target of exactly one block.
func TestSymlink_MaxTarget_Success(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()
	target := fmt.Sprintf("/%0*d", schema.BlockSize-1, 0)

	require.Len(t, target, schema.BlockSize)
	require.NoError(t, fs.Symlink(target, "/l"))
}
