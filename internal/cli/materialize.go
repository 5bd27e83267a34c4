package cli

import (
	"github.com/spf13/cobra"

	"github.com/genba-tools/photoflow/internal/store"
)

// MaterializeCmd rebuilds the read views from the record log.
func MaterializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materialize <folder>",
		Short: "Rebuild records.json and records.csv from the record log",
		Long: `Recompute the full-collection and tabular views from the folder's
append-only record log, deduplicated by filename (last occurrence wins).
The log itself is never touched; running this twice on an unchanged log
produces identical files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Open(args[0])
			if err := st.Materialize(args[0]); err != nil {
				return err
			}
			cmd.Printf("views rebuilt in %s\n", args[0])
			return nil
		},
	}
	return cmd
}
