package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/genba-tools/photoflow/internal/api"
	"github.com/genba-tools/photoflow/internal/config"
	"github.com/genba-tools/photoflow/internal/store"
	"github.com/genba-tools/photoflow/pkg/logger"
)

// ServeCmd exposes a folder's classification outputs over HTTP.
func ServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve <folder>",
		Short: "Serve records, groups, and activities as read-only JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log, err := logger.NewSugared(debug || cfg.Debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			app := &api.App{
				Folder: args[0],
				Store:  store.Open(args[0]),
				Log:    log,
			}
			server := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           api.NewRouter(app),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				server.Shutdown(shutdownCtx)
			}()

			log.Infow("serving folder outputs", "folder", args[0], "addr", cfg.ListenAddr)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "photoflow.yaml", "config file path")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "verbose logging")
	return cmd
}
