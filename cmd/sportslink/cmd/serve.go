package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mosfeq/sportslink/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(app AppContext) *cobra.Command {
	var (
		host   string
		port   int
		secret string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local sync server",
		Long: `Serve runs the sync server the sportslink client talks to: account
endpoints, the document store, and the watch stream. State lives in
memory and is lost on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.ServerConfig()
			if host != "" {
				cfg.Host = host
			}
			if port != 0 {
				cfg.Port = port
			}
			if secret != "" {
				cfg.TokenSecret = []byte(secret)
			}

			srv, err := server.New(cfg, app.Logger())
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			app.Logger().Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("Sync server listening")

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind address (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	cmd.Flags().StringVar(&secret, "secret", "", "token signing secret")

	return cmd
}
