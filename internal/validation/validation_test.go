package validation

import (
	"testing"

	"github.com/desertwitch/memfs/internal/filesystem"
	"github.com/desertwitch/memfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validSnapshot returns a consistent snapshot of a root holding directory
// "/d" (id 2), regular file "/d/f" (id 3) opened once, and a symbolic link
// "/l" (id 4).
func validSnapshot() *schema.Snapshot {
	return &schema.Snapshot{
		Root:    1,
		Cwd:     1,
		CwdPath: "/",
		Descriptors: map[uint64]schema.Stat{
			1: {ID: 1, Kind: schema.KindDirectory, Nlink: 3},
			2: {ID: 2, Kind: schema.KindDirectory, Nlink: 2},
			3: {ID: 3, Kind: schema.KindRegularFile, Nlink: 1, Size: 20, Blocks: 2},
			4: {ID: 4, Kind: schema.KindSymlink, Nlink: 1, Target: "/d/f", Size: 4},
		},
		Directories: map[uint64][]schema.DirEntry{
			1: {
				{Name: ".", ID: 1, Kind: schema.KindDirectory},
				{Name: "..", ID: 1, Kind: schema.KindDirectory},
				{Name: "d", ID: 2, Kind: schema.KindDirectory},
				{Name: "l", ID: 4, Kind: schema.KindSymlink},
			},
			2: {
				{Name: ".", ID: 2, Kind: schema.KindDirectory},
				{Name: "..", ID: 1, Kind: schema.KindDirectory},
				{Name: "f", ID: 3, Kind: schema.KindRegularFile},
			},
		},
		OpenFiles: []schema.OpenFile{
			{Handle: 0, ID: 3, Offset: 20, Mode: schema.ReadWrite, Refs: 1},
		},
	}
}

// TestValidateSnapshot_Success tests that a consistent snapshot passes.
func TestValidateSnapshot_Success(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSnapshot(validSnapshot()))
}

// TestValidateSnapshot_Fail tests that each kind of corruption is detected.
func TestValidateSnapshot_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(s *schema.Snapshot)
		want error
	}{
		{
			name: "Fail_NoRoot",
			mod:  func(s *schema.Snapshot) { delete(s.Descriptors, 1) },
			want: ErrNoRoot,
		},
		{
			name: "Fail_CwdNotDirectory",
			mod:  func(s *schema.Snapshot) { s.Cwd = 3 },
			want: ErrBadCwd,
		},
		{
			name: "Fail_LinkCountTooHigh",
			mod: func(s *schema.Snapshot) {
				st := s.Descriptors[3]
				st.Nlink = 2
				s.Descriptors[3] = st
			},
			want: ErrLinkCountMismatch,
		},
		{
			name: "Fail_ParentLinkCountNotRaised",
			mod: func(s *schema.Snapshot) {
				st := s.Descriptors[1]
				st.Nlink = 2
				s.Descriptors[1] = st
			},
			want: ErrLinkCountMismatch,
		},
		{
			name: "Fail_DanglingEntry",
			mod: func(s *schema.Snapshot) {
				s.Directories[2] = append(s.Directories[2], schema.DirEntry{Name: "x", ID: 9})
			},
			want: ErrDanglingEntry,
		},
		{
			name: "Fail_SelfEntry",
			mod:  func(s *schema.Snapshot) { s.Directories[2][0].ID = 1 },
			want: ErrBadSelfEntry,
		},
		{
			name: "Fail_RootParentEntry",
			mod:  func(s *schema.Snapshot) { s.Directories[1][1].ID = 2 },
			want: ErrBadParentEntry,
		},
		{
			name: "Fail_ParentDoesNotListChild",
			mod: func(s *schema.Snapshot) {
				s.Directories[1] = []schema.DirEntry{
					{Name: ".", ID: 1},
					{Name: "..", ID: 1},
					{Name: "l", ID: 4},
				}
			},
			want: ErrBadParentEntry,
		},
		{
			name: "Fail_DirectoryHardlink",
			mod: func(s *schema.Snapshot) {
				s.Directories[1] = append(s.Directories[1], schema.DirEntry{Name: "e", ID: 2})
			},
			want: ErrDirectoryHardlink,
		},
		{
			name: "Fail_BlocksBeyondSize",
			mod: func(s *schema.Snapshot) {
				st := s.Descriptors[3]
				st.Blocks = 3
				s.Descriptors[3] = st
			},
			want: ErrBlocksBeyondSize,
		},
		{
			name: "Fail_SymlinkSizeMismatch",
			mod: func(s *schema.Snapshot) {
				st := s.Descriptors[4]
				st.Size = 5
				s.Descriptors[4] = st
			},
			want: ErrBadSymlink,
		},
		{
			name: "Fail_SymlinkTargetTooLong",
			mod: func(s *schema.Snapshot) {
				st := s.Descriptors[4]
				st.Target = "/aaaaaaaaaaaaaaaaaaaa"
				st.Size = int64(len(st.Target))
				s.Descriptors[4] = st
			},
			want: ErrBadSymlink,
		},
		{
			name: "Fail_OpenFileOffsetBeyondSize",
			mod:  func(s *schema.Snapshot) { s.OpenFiles[0].Offset = 21 },
			want: ErrBadOpenFile,
		},
		{
			name: "Fail_OpenFileOnDirectory",
			mod:  func(s *schema.Snapshot) { s.OpenFiles[0].ID = 2 },
			want: ErrBadOpenFile,
		},
		{
			name: "Fail_OpenFileHandleOutOfRange",
			mod:  func(s *schema.Snapshot) { s.OpenFiles[0].Handle = schema.MaxOpenFiles },
			want: ErrTooManyOpenFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap := validSnapshot()
			tt.mod(snap)

			assert.ErrorIs(t, ValidateSnapshot(snap), tt.want)
		})
	}
}

// TestValidateSnapshot_Handler_Success tests that a snapshot of a populated
// [filesystem.Handler] passes.
func TestValidateSnapshot_Handler_Success(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewHandler()

	require.NoError(t, fs.Mkdir("/a"))
	require.NoError(t, fs.Mkdir("/a/b"))
	require.NoError(t, fs.Create("/a/b/f"))
	require.NoError(t, fs.Link("/a/b/f", "/g"))
	require.NoError(t, fs.Symlink("/a/b", "/l"))
	require.NoError(t, fs.Cd("/l"))

	fd, err := fs.Open("f")
	require.NoError(t, err)
	require.NoError(t, fs.Write(fd, 5, []byte("hello")))
	require.NoError(t, fs.Unlink("/g"))

	require.NoError(t, ValidateSnapshot(fs.Snapshot()))
}
