package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/genba-tools/photoflow/internal/report"
)

// GroupCmd classifies machine photos into numbered groups.
func GroupCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "group <folder>",
		Short: "Classify machine photos and assign stable group numbers",
		Long: `Classify each new machine photo (overall view, inspection sticker,
emission/noise sticker, number plate) and cluster photos of the same machine
by time. Group numbers are stable: re-running with new photos never
renumbers existing assignments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], flags, true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, groups, err := rt.eng.RunGroup(ctx)
			report.Print(cmd.OutOrStdout(), *summary)
			report.PrintGroups(cmd.OutOrStdout(), groups)
			if rt.cfg.DryRun && err == nil {
				cmd.Println("\n(dry-run: output not saved)")
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
