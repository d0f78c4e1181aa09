package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/escapetime/pkg/render"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	cfg     render.Config
	flags   *render.Flags
	addr    string
	limits  limits
	verbose bool
}

func mainCmd() *cobra.Command {
	opts := &options{cfg: render.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "escapeserve",
		Short: "Serve escape-time fractal renders over HTTP and websockets",
		Long: `Serve escape-time fractal renders.

  GET /render?mode=julia&n=2&cr=-0.8&ci=0.156&w=800&h=800&format=png
  GET /ws  (send a JSON request, receive a JSON header then one binary message per row)

Render flags set the defaults for parameters a request leaves out.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	opts.flags = opts.cfg.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "address to listen on")
	cmd.Flags().IntVar(&opts.limits.size, "max-size", defaultMaxSize, "largest width or height a request may ask for")
	cmd.Flags().IntVar(&opts.limits.iterations, "max-iterations-limit", defaultMaxIterations, "largest max-iterations a request may ask for")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log per-row progress")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)

	opts.flags.Apply()

	s := &server{
		defaults: opts.cfg,
		limits:   opts.limits,
		logger:   logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
