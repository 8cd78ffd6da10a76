package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/iota-uz/hrms-lite/internal/fakeapi"
	"github.com/iota-uz/hrms-lite/pkg/composables"
	"github.com/iota-uz/hrms-lite/pkg/metrics"
	"github.com/iota-uz/hrms-lite/pkg/middleware"
)

func newDevCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Local development helpers",
		Hidden: true,
	}
	cmd.AddCommand(newDevServeCmd(c))
	return cmd
}

func newDevServeCmd(c *cli) *cobra.Command {
	var (
		addr  string
		seed  int
		days  int
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory HRMS API for local runs",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.ctx(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			logger := composables.UseLogger(ctx)

			api := fakeapi.New(fakeapi.WithLatency(delay))
			api.Seed(seed, days)

			r := mux.NewRouter()
			r.Use(middleware.WithLogger(c.conf.Logger(), middleware.LoggerOptions{
				RequestIDHeader: c.conf.API.RequestIDHeader,
			}))
			metrics.Register(r, metrics.DefaultPath)
			r.PathPrefix("/").Handler(api.Handler())

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			logger.WithField("addr", addr).Info("serving fake API at /api")
			c.printer.line("Serving fake API on http://%s/api (metrics at %s)", addr, metrics.DefaultPath)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	cmd.Flags().IntVar(&seed, "seed", 12, "Sample employees to create")
	cmd.Flags().IntVar(&days, "days", 7, "Days of sample attendance per employee")
	cmd.Flags().DurationVar(&delay, "latency", 0, "Delay added to every response")
	return cmd
}
