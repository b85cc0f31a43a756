package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []byte
		content  []byte
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file default mode", content: []byte("theme: dark\n"), wantMode: fsutil.DefaultFileMode},
		{name: "new file explicit mode", content: []byte("x"), mode: 0o600, wantMode: 0o600},
		{name: "overwrite", existing: []byte("old"), content: []byte("new"), wantMode: fsutil.DefaultFileMode},
		{name: "empty content", content: []byte{}, wantMode: fsutil.DefaultFileMode},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, ".mdview.yml")
			if testCase.existing != nil {
				require.NoError(t, os.WriteFile(path, testCase.existing, 0o644))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, testCase.content, testCase.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, testCase.content, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantMode, info.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files left behind")
		})
	}
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "file.yml")
	require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	assert.NoFileExists(t, path)
}

func TestWriteAtomic_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "file.yml")
	require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
	assert.NoFileExists(t, path)
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "file.yml")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written, "missing file is written")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is skipped")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}
