// Package cli holds the photoflow cobra commands.
package cli

import "github.com/spf13/cobra"

const version = "0.3.0"

// NewRootCmd assembles the photoflow command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "photoflow",
		Short:   "Organize construction site photos by machine and activity",
		Version: version,
		Long: `photoflow classifies a folder of timestamped site photographs using an
external vision/OCR backend. Records are kept in an append-only log per
folder; re-running only processes photos that are not classified yet.`,
	}

	rootCmd.AddCommand(ScanCmd())
	rootCmd.AddCommand(GroupCmd())
	rootCmd.AddCommand(MaterializeCmd())
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(WatchCmd())

	return rootCmd
}
