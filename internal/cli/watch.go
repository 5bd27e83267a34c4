package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/genba-tools/photoflow/internal/engine"
	"github.com/genba-tools/photoflow/internal/report"
	"github.com/genba-tools/photoflow/internal/watch"
)

// WatchCmd keeps a folder classified as new photos arrive.
func WatchCmd() *cobra.Command {
	var (
		flags    commonFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <folder>",
		Short: "Watch a folder and scan new photos as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], flags, true)
			if err != nil {
				return err
			}
			defer rt.close()

			w, err := watch.New(args[0], debounce, rt.log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt.log.Infow("watching folder", "folder", args[0])
			err = w.Run(ctx, func(ctx context.Context) error {
				summary, _, err := rt.eng.RunScan(ctx)
				report.Print(cmd.OutOrStdout(), *summary)
				if errors.Is(err, engine.ErrNothingProcessed) {
					// Nothing usable this round; the next burst retries.
					return nil
				}
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "settle time before re-scanning (default 2s)")
	return cmd
}
