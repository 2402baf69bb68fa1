package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/config"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/notify"
	"github.com/ariel-frischer/whatsnew/internal/whatsnew"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 150 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the badge whenever the changelog file changes",
	Long: `Watch the configured changelog file and print a badge line every time
it changes. Requires 'source: file'. A file that fails to parse is reported
and the previous catalogue stays in use. Watching never marks anything as
seen. With --notify, a desktop notification announces each new version.`,
	Example: `  WHATSNEW_SOURCE=file WHATSNEW_CHANGELOG_PATH=changelog.yaml whatsnew watch`,
	Args:    cobra.NoArgs,
	RunE:    runWatch,
}

func init() {
	watchCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("notify", false, "Show a desktop notification when a new version is published")
}

// isNewRelease reports whether next announces a version that prev did not.
func isNewRelease(prev, next whatsnew.View) bool {
	return next.HasUnread && next.CurrentVersion != prev.CurrentVersion && next.UnreadCount > prev.UnreadCount
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.Source != config.SourceFile {
		return clierrors.ConfigError(
			fmt.Sprintf("watch needs a changelog file, source is %q", s.cfg.Source),
			"Set source to file: whatsnew config set source file",
			"And point changelog_path at the catalogue: whatsnew config set changelog_path changelog.yaml",
		)
	}

	var notifier *notify.Handler
	if enabled, _ := cmd.Flags().GetBool("notify"); enabled {
		notifier = notify.NewHandler(s.logger)
	}

	out := cmd.OutOrStdout()
	last := s.panel.Snapshot()
	fmt.Fprintln(out, badgeLine(last))

	reloads := make(chan *changelog.Catalogue)
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		defer close(reloads)
		return watchCatalogue(ctx, s.cfg.ChangelogPath, s.logger, func(c *changelog.Catalogue) {
			select {
			case reloads <- c:
			case <-ctx.Done():
			}
		})
	})

	g.Go(func() error {
		for c := range reloads {
			s.panel.Reload(c)
			view := s.panel.Snapshot()
			fmt.Fprintln(out, badgeLine(view))

			if notifier != nil && isNewRelease(last, view) {
				notifier.Notify(ctx, notify.NewRelease(changelog.NormalizeVersion(view.CurrentVersion), view.UnreadCount))
			}
			last = view
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchCatalogue calls onChange with the freshly parsed catalogue each time
// the file at path is written, created or replaced. The parent directory is
// watched so editors that save by renaming are seen. It returns when ctx is
// done.
func watchCatalogue(ctx context.Context, path string, logger *slog.Logger, onChange func(*changelog.Catalogue)) error {
	logger = logger.With("component", "watch", "path", path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			cat, err := changelog.Load(abs)
			if err != nil {
				logger.Warn("reloading changelog failed, keeping previous catalogue", "error", err)
				continue
			}
			logger.Debug("changelog reloaded", "entries", cat.Len())
			onChange(cat)
		}
	}
}
