package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"observerkit/internal/httpapi"
	"observerkit/internal/playground"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(st *state) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				st.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, st)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080")
	return cmd
}

// serve runs the playground until ctx is canceled, then shuts down gracefully.
func serve(ctx context.Context, st *state) error {
	cfg := st.cfg
	board, err := playground.New(playground.Options{
		Logger:   st.log,
		Registry: prometheus.DefaultRegisterer,
		History:  cfg.History,
	})
	if err != nil {
		return err
	}

	httpapi.SetLogger(st.log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.Configure(httpapi.Options{
		MaxBodyBytes: cfg.MaxBodyBytes,
		CORS:         cfg.CORSEnabled,
		CORSOrigins:  cfg.CORSOrigins,
	})
	httpapi.SetBaseContext(ctx)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.NewMux(board),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		st.log.Info().Str("addr", ln.Addr().String()).Msg("observerdemo playground listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		st.log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	st.log.Info().Msg("playground stopped")
	return nil
}
