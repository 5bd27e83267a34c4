package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/genba-tools/photoflow/internal/report"
)

// ScanCmd classifies a folder's photos by activity.
func ScanCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Analyze photos and assign activity labels",
		Long: `Analyze each new photo in the folder with the vision backend, store the
records, and resolve an activity label per photo. Photos whose text gives no
signal inherit the previous activity while the time gap stays under the
threshold. Classified photos are filed into activity subfolders unless
--dry-run is set.

Exits non-zero only when not a single pending photo produced a usable
record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(args[0], flags, true)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, activities, err := rt.eng.RunScan(ctx)
			report.Print(cmd.OutOrStdout(), *summary)
			if len(activities) > 0 {
				report.PrintActivities(cmd.OutOrStdout(), activities)
			}
			if rt.cfg.DryRun && err == nil {
				cmd.Println("\n(dry-run: no files moved)")
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
