package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ServesRegistry(t *testing.T) {
	r := mux.NewRouter()
	Register(r, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DefaultPath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPush(t *testing.T) {
	var (
		mu      sync.Mutex
		gotPath string
		gotBody string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotBody = string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "hrms_test_pushed_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	require.NoError(t, Push(context.Background(), PushOptions{Addr: srv.URL, Job: "hrms-cli", Gatherer: reg}))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/metrics/job/hrms-cli", gotPath)
	assert.True(t, strings.Contains(gotBody, "hrms_test_pushed_total"))
}

func TestPush_NoAddrIsNoop(t *testing.T) {
	assert.NoError(t, Push(context.Background(), PushOptions{}))
}
