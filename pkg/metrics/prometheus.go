// Package metrics exposes the process metrics: scraped over HTTP by the dev
// server, or pushed to a Pushgateway when a CLI run ends.
package metrics

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const DefaultPath = "/debug/prometheus"

// Register serves the default registry at path on r.
func Register(r *mux.Router, path string) {
	if path == "" {
		path = DefaultPath
	}
	r.Handle(path, promhttp.Handler()).Methods(http.MethodGet)
}

type PushOptions struct {
	Addr string
	Job  string
	// Gatherer defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Push sends every gathered metric to the Pushgateway at opts.Addr. An empty
// address is a no-op.
func Push(ctx context.Context, opts PushOptions) error {
	if opts.Addr == "" {
		return nil
	}
	g := opts.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	job := opts.Job
	if job == "" {
		job = "hrms"
	}
	if err := push.New(opts.Addr, job).Gatherer(g).PushContext(ctx); err != nil {
		return errors.Wrap(err, "push metrics")
	}
	return nil
}
