package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/gzio"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/logging"
	"github.com/jbctechsolutions/gzio/internal/infrastructure/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Compress files as they appear in a directory",
		Long: `Watch the given directory and gzip-compress files as they are created
or modified. Each file <name> is written to <name>.gz next to it; files
that already carry a .gz extension are left alone. Runs until
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(commandContext(), args[0])
		},
	}
}

func runWatch(ctx context.Context, dir string) error {
	formatter := GetFormatter()
	logger := logging.Default()

	cfg := watch.DefaultConfig()
	if app := GetAppContext(); app != nil {
		cfg.DebounceDuration = app.Config.Watch.Debounce
		cfg.BufferSize = app.Config.Watch.BufferSize
	}

	watcher, err := watch.NewWatcher(cfg)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Watch(ctx, dir); err != nil {
		return err
	}

	formatter.Info("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if event.Type != watch.EventCreate && event.Type != watch.EventWrite {
				continue
			}
			if err := compressFile(ctx, event.Path); err != nil {
				formatter.Warning("could not compress %s: %v", event.Path, err)
				logger.WarnContext(ctx, "compress failed", "path", event.Path, "error", err)
				continue
			}
			formatter.Success("compressed %s", event.Path)

		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "watcher error", "error", err)
		}
	}
}

// compressFile gzips the file at path to path+".gz".
func compressFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out := path + ".gz"
	ctx, span := GetTracer().StartFileSpan(ctx, "write_text", out)
	if err := gzio.WriteTextGz(out, string(data)); err != nil {
		span.EndWithError(err)
		return err
	}
	span.SetBytes(len(data), compressedSize(out))
	span.End()
	logging.Default().DebugContext(ctx, "compressed file", "path", path, "bytes", len(data))
	return nil
}
