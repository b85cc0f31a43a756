package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/config"
	"github.com/yaklabco/mdview/pkg/fsutil"
	"github.com/yaklabco/mdview/pkg/preview"
	"github.com/yaklabco/mdview/pkg/runner"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

type watchFlags struct {
	renderFlags
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Render a Markdown file and re-render it when it changes",
		Long: `Render a Markdown file, then watch it and render it again every time it
is saved. Bursts of file events are coalesced: the file is re-rendered once
events have been quiet for the debounce period. Press Ctrl+C to stop.

Examples:
  mdview watch README.md
  mdview watch --debounce 500ms --theme light notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderFlags(cmd, &cfg, &flags.renderFlags)
			if cmd.Flags().Changed("debounce") {
				cfg.Debounce = flags.debounce
			}
			return runWatch(cmd, args[0], &cfg)
		},
	}

	addRenderFlags(cmd, &flags.renderFlags)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", config.DefaultDebounce,
		"quiet period before re-rendering")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, cfg *config.Config) error {
	logger := logging.Default()

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	ctx, stop := signal.NotifyContext(env.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	session := &watchSession{
		path:     absPath,
		cfg:      env.loaded.Config,
		runner:   runner.New(runner.NewCache()),
		renderer: newDocumentRenderer(cmd, env, out),
		out:      out,
		clear:    isTerminal(out),
	}
	render := func() error {
		_, err := session.refresh(ctx)
		return err
	}

	if err := render(); err != nil {
		return err
	}

	logger.Debug("watching", logging.FieldPath, absPath, logging.FieldDebounce, env.loaded.Config.Debounce)
	err = watchFile(ctx, absPath, env.loaded.Config.Debounce, render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchSession renders one file over and over. It skips content it has
// already shown and parses through a cache that lives as long as the
// session, so returning to an earlier version of the file is not parsed again.
type watchSession struct {
	path     string
	cfg      *config.Config
	runner   *runner.Runner
	renderer *preview.Renderer
	out      io.Writer
	clear    bool

	snap *fsutil.Snapshot
}

// refresh renders the file unless its content matches the last rendering.
// Read failures are rendered as an error document. It reports whether
// anything was written.
func (s *watchSession) refresh(ctx context.Context) (bool, error) {
	logger := logging.Default()

	if s.snap != nil {
		changed, err := fsutil.Changed(ctx, s.snap)
		if err != nil && ctx.Err() != nil {
			return false, ctx.Err()
		}
		// A failed comparison is treated as a change; the read below
		// reports it.
		if err == nil && !changed {
			logger.Debug("content unchanged", logging.FieldPath, s.path, logging.FieldDigest, s.snap.Digest)
			return false, nil
		}
	}

	var outcome runner.FileOutcome
	content, current, err := fsutil.ReadFile(ctx, s.path)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		s.snap = nil
		outcome = runner.FileOutcome{Path: s.path, Error: err}
	} else {
		s.snap = current
		outcome = s.runner.ParseContent(s.path, content, s.cfg)
		logger.Debug("parsed", logging.FieldPath, s.path, logging.FieldCached, outcome.Cached)
	}

	if s.clear {
		if _, err := io.WriteString(s.out, clearScreen); err != nil {
			return false, fmt.Errorf("write output: %w", err)
		}
	}
	if err := writeDocument(s.out, s.renderer, outcome); err != nil {
		return false, err
	}
	return true, nil
}

// watchFile calls onChange each time path is written, created, renamed or
// removed, once events have been quiet for debounce. It watches the parent
// directory so that editors which save by renaming a temporary file are
// still seen. It returns when ctx is done or onChange fails.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	logger := logging.Default()
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			logger.Debug("file event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
