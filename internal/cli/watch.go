package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/dgallion1/doclint/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Check a directory, then re-check whenever its Markdown files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dir := args[0]
			runOnce := func() {
				files, err := corpus.FromDir(dir)
				if err != nil {
					log.Error("load failed", "error", err)
					return
				}
				_, rep, err := pipeline.Run(files)
				if err != nil {
					log.Error("check failed", "error", err)
					return
				}
				rep.Render(os.Stdout)
			}
			runOnce()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			w := watch.New(dir, cfg.WatchDebounce, runOnce, log)
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			return nil
		},
	}
}
