package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/preview"
	"github.com/yaklabco/mdview/pkg/runner"
)

func TestWatchFile_CallsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	other := filepath.Join(dir, "other.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() error {
			calls.Add(1)
			return nil
		})
	}()

	// The watcher starts asynchronously, so keep writing until it reports.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("# v2\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	// Writes to siblings are ignored.
	before := calls.Load()
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, calls.Load())

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestWatchFile_StopsOnCallbackError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	errStop := errors.New("stop")
	done := make(chan error, 1)
	go func() {
		done <- watchFile(context.Background(), path, 10*time.Millisecond, func() error {
			return errStop
		})
	}()

	var result error
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("# v2\n"), 0o644)
		select {
		case result = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	require.ErrorIs(t, result, errStop)
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "doc.md")
	err := watchFile(context.Background(), path, 0, func() error { return nil })
	require.Error(t, err)
}

func newTestSession(path string, cache *runner.Cache) (*watchSession, *bytes.Buffer) {
	var out bytes.Buffer
	return &watchSession{
		path:     path,
		cfg:      config.NewConfig(),
		runner:   runner.New(cache),
		renderer: preview.NewRenderer(preview.Options{Theme: preview.DefaultTheme(), Width: 60}),
		out:      &out,
	}, &out
}

func TestWatchSession_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")
	cache := runner.NewCache()
	session, out := newTestSession(path, cache)

	steps := []struct {
		name      string
		content   string
		rendered  bool
		wantTitle string
		wantHits  int
	}{
		{name: "first render", content: "# One\n", rendered: true, wantTitle: "One"},
		{name: "identical save skipped", content: "# One\n", rendered: false},
		{name: "edit", content: "# Two\n", rendered: true, wantTitle: "Two"},
		{name: "undo served from cache", content: "# One\n", rendered: true, wantTitle: "One", wantHits: 1},
		{name: "redo served from cache", content: "# Two\n", rendered: true, wantTitle: "Two", wantHits: 2},
	}

	// Each step builds on the file left by the one before.
	for _, step := range steps {
		require.NoError(t, os.WriteFile(path, []byte(step.content), 0o644), step.name)
		out.Reset()

		rendered, err := session.refresh(ctx)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.rendered, rendered, step.name)
		if step.rendered {
			assert.Contains(t, out.String(), step.wantTitle, step.name)
		} else {
			assert.Empty(t, out.String(), step.name)
		}

		if step.wantHits > 0 {
			hits, _ := cache.Counters()
			assert.Equal(t, step.wantHits, hits, step.name)
		}
	}
}

func TestWatchSession_RefreshRendersReadFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

	session, out := newTestSession(path, runner.NewCache())
	rendered, err := session.refresh(ctx)
	require.NoError(t, err)
	require.True(t, rendered)

	// Replacing the directory with a file makes both the change check and
	// the read fail with something other than "not found".
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	out.Reset()
	rendered, err = session.refresh(ctx)
	require.NoError(t, err, "read failures keep the session alive")
	assert.True(t, rendered)
	assert.Contains(t, out.String(), "Error:")
	assert.Nil(t, session.snap)

	// Once the file is back it renders normally again.
	require.NoError(t, os.Remove(dir))
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# Back\n"), 0o644))

	out.Reset()
	rendered, err = session.refresh(ctx)
	require.NoError(t, err)
	assert.True(t, rendered)
	assert.Contains(t, out.String(), "Back")
}

func TestWatchSession_RefreshCancelled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, out := newTestSession(path, nil)
	rendered, err := session.refresh(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, rendered)
	assert.Empty(t, out.String())
}

func TestChooseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		explicit string
		path     string
		content  string
		detect   bool
		want     string
		wantErr  error
	}{
		{name: "explicit alias", explicit: "py", want: "python"},
		{name: "explicit unknown", explicit: "cobol", wantErr: ErrUnknownLanguage},
		{name: "extension", path: "cmd/main.go", want: "go"},
		{name: "extension wins over content", path: "q.sql", content: "package main", detect: true, want: "sql"},
		{name: "detected from content", content: "package main\n\nfunc main() {}\n", detect: true, want: "go"},
		{name: "detection disabled", content: "package main\n", want: ""},
		{name: "unknown extension", path: "notes.unknownext", content: "hello", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := chooseLanguage(testCase.explicit, testCase.path, []byte(testCase.content), testCase.detect)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestRenderWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 72, renderWidth(72, os.Stdout))
	assert.Equal(t, 80, renderWidth(0, &bytes.Buffer{}))
}
