// Package apiclient talks to the HRMS REST API. Every failure it returns is a
// *httpapi.Failure; it never notifies anyone itself.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/hrms-lite/pkg/composables"
	"github.com/iota-uz/hrms-lite/pkg/httpapi"
)

var tracer = otel.Tracer("hrms-apiclient")

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	RequestIDHeader string
	Logger          *logrus.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

type Client struct {
	baseURL         string
	httpClient      *http.Client
	requestIDHeader string
	log             *logrus.Logger
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:         strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		httpClient:      hc,
		requestIDHeader: opts.RequestIDHeader,
		log:             log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one API call. Endpoint is a stable label for metrics and
// spans (e.g. "employees.list"); Path is appended to the base URL.
type Request struct {
	Method   string
	Path     string
	Endpoint string
	Query    url.Values
	Body     any
}

// Do performs the request and decodes the envelope's data into out (which may
// be nil). It returns the envelope message on success.
func (c *Client) Do(ctx context.Context, r Request, out any) (string, error) {
	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = r.Path
	}
	ctx, span := tracer.Start(ctx, "apiclient."+endpoint, trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.route", r.Path),
	))
	defer span.End()

	start := time.Now()
	status, msg, err := c.do(ctx, r, out)
	m := getMetrics()
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	label := resultLabel(status)
	if status == 0 {
		label = "network"
		var f *httpapi.Failure
		if asFailure(err, &f) && f.Msg == httpapi.MsgRequestConfig {
			label = "request"
		}
	}
	m.requestsTotal.WithLabelValues(endpoint, r.Method, label).Inc()

	fields := logrus.Fields{
		"method":   r.Method,
		"path":     r.Path,
		"status":   status,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.WithFields(fields).WithError(err).Debug("api request failed")
		return "", err
	}
	span.SetAttributes(attribute.Int("http.status_code", status))
	c.log.WithFields(fields).Debug("api request")
	return msg, nil
}

func (c *Client) do(ctx context.Context, r Request, out any) (int, string, error) {
	u, err := url.Parse(c.baseURL + r.Path)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return 0, "", httpapi.ConfigFailure(err)
	}
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return 0, "", httpapi.ConfigFailure(err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return 0, "", httpapi.ConfigFailure(err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, composables.UseRequestID(ctx))
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", httpapi.NetworkFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", httpapi.NetworkFailure(err)
	}

	var env httpapi.Envelope
	decodeErr := json.Unmarshal(respBody, &env)
	// Only an explicit "status": false fails a 2xx response.
	var flag struct {
		Status *bool `json:"status"`
	}
	if decodeErr == nil {
		_ = json.Unmarshal(respBody, &flag)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr != nil {
			return resp.StatusCode, "", httpapi.FromEnvelope(nil, resp.StatusCode)
		}
		return resp.StatusCode, "", httpapi.FromEnvelope(&env, resp.StatusCode)
	}
	if decodeErr != nil {
		return resp.StatusCode, "", httpapi.NewFailure(http.StatusBadGateway, httpapi.MsgBadResponse).WithCause(decodeErr)
	}
	if flag.Status != nil && !*flag.Status {
		return resp.StatusCode, "", httpapi.FromEnvelope(&env, resp.StatusCode)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, "", httpapi.NewFailure(http.StatusBadGateway, httpapi.MsgBadResponse).WithCause(err)
		}
	}
	return resp.StatusCode, env.Msg, nil
}

func (c *Client) Get(ctx context.Context, endpoint, path string, query url.Values, out any) (string, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, endpoint, path string, body, out any) (string, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, endpoint, path string) (string, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Endpoint: endpoint, Path: path}, nil)
}
