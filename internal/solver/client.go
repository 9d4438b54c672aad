// Package solver is the HTTP client of the external cube solving service.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/TheDeepDelve/cubeviz"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Request is the body of POST /solve.
type Request struct {
	ScrambleMoves string `json:"scramble_moves"`
	Method        string `json:"method"`
}

// Response is the body returned by POST /solve. Solvers return either
// solution or full_solution; an error field reports a failure. Every other
// top-level field is kept in Metadata.
type Response struct {
	Solution     string
	FullSolution string
	Error        string
	Metadata     map[string]any
}

const (
	fieldSolution     = "solution"
	fieldFullSolution = "full_solution"
	fieldError        = "error"
)

// MarshalJSON writes Metadata as top-level fields next to the known ones.
func (r Response) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(r.Metadata)+3)
	for k, v := range r.Metadata {
		fields[k] = v
	}
	for k, v := range map[string]string{
		fieldSolution:     r.Solution,
		fieldFullSolution: r.FullSolution,
		fieldError:        r.Error,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// UnmarshalJSON reads the known fields and collects the rest into Metadata.
func (r *Response) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Response{}
	for k, raw := range fields {
		var dst *string
		switch k {
		case fieldSolution:
			dst = &r.Solution
		case fieldFullSolution:
			dst = &r.FullSolution
		case fieldError:
			dst = &r.Error
		}
		if dst != nil {
			if string(raw) == "null" {
				continue
			}
			if err := json.Unmarshal(raw, dst); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			continue
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		if r.Metadata == nil {
			r.Metadata = make(map[string]any)
		}
		r.Metadata[k] = v
	}
	return nil
}

// Moves returns the solution string to play, preferring full_solution.
func (r Response) Moves() string {
	if r.FullSolution != "" {
		return r.FullSolution
	}
	return r.Solution
}

// Client calls the solver service. It implements cubeviz.Solver.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		cl.logger = l.WithPrefix("solver")
	}
}

// WithRegisterer registers client metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cl *Client) {
		cl.metrics = NewMetrics(reg)
	}
}

// NewClient returns a client for the solver at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return c
}

// Solve requests a solution for scramble. Errors reported in the response
// body wrap cubeviz.ErrSolverReported through *cubeviz.SolverError; transport
// failures and unexpected responses wrap cubeviz.ErrSolverUnavailable.
func (c *Client) Solve(ctx context.Context, scramble string, method cubeviz.Method) (cubeviz.Solution, error) {
	start := time.Now()
	sol, err := c.solve(ctx, scramble, method)
	c.metrics.duration.WithLabelValues(string(method)).Observe(time.Since(start).Seconds())
	c.metrics.requests.WithLabelValues(string(method), outcome(err)).Inc()
	if err == nil {
		c.metrics.moves.WithLabelValues(string(method)).Observe(float64(sol.Len()))
	}
	return sol, err
}

func (c *Client) solve(ctx context.Context, scramble string, method cubeviz.Method) (cubeviz.Solution, error) {
	requestID := uuid.NewString()
	logger := c.logger.With("request", requestID, "method", method)

	body, err := json.Marshal(Request{ScrambleMoves: scramble, Method: string(method)})
	if err != nil {
		return cubeviz.Solution{}, fmt.Errorf("marshal solve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return cubeviz.Solution{}, fmt.Errorf("%w: create request: %v", cubeviz.ErrSolverUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger.Debug("sending solve request", "scramble", scramble)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("solver call failed", "err", err)
		return cubeviz.Solution{}, fmt.Errorf("%w: %v", cubeviz.ErrSolverUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return cubeviz.Solution{}, fmt.Errorf("%w: read response: %v", cubeviz.ErrSolverUnavailable, err)
	}

	var out Response
	decodeErr := json.Unmarshal(raw, &out)
	if decodeErr == nil && out.Error != "" {
		logger.Warn("solver reported an error", "status", resp.StatusCode, "error", out.Error)
		return cubeviz.Solution{}, &cubeviz.SolverError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("solver returned unexpected status", "status", resp.StatusCode, "body", truncate(string(raw), 200))
		return cubeviz.Solution{}, fmt.Errorf("%w: status %d", cubeviz.ErrSolverUnavailable, resp.StatusCode)
	}
	if decodeErr != nil {
		return cubeviz.Solution{}, fmt.Errorf("%w: decode response: %v", cubeviz.ErrSolverUnavailable, decodeErr)
	}

	moves := cubeviz.SplitMoves(out.Moves())
	logger.Info("solution received", "moves", len(moves))
	return cubeviz.Solution{Method: method, Moves: moves, Metadata: out.Metadata}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cubeviz.ErrSolverReported):
		return "reported"
	default:
		return "unavailable"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
