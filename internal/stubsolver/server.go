package stubsolver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/solver"
)

// Server serves the solver contract.
type Server struct {
	logger   *log.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewServer returns a server with its own metrics registry.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Server{
		logger:   logger.WithPrefix("stub-solver"),
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubeviz",
			Subsystem: "stub_solver",
			Name:      "requests_total",
			Help:      "Solve requests by method and HTTP status.",
		}, []string{"method", "status"}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cubeviz",
			Subsystem: "stub_solver",
			Name:      "solve_duration_seconds",
			Help:      "Time spent computing solutions.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	router.POST("/solve", s.handleSolve)
	return router
}

// requestID echoes or assigns the correlation ID.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(solver.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(solver.RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSolve(c *gin.Context) {
	start := time.Now()
	var req solver.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reply(c, "", http.StatusBadRequest, solver.Response{Error: "invalid request body"})
		return
	}

	method := cubeviz.Method(strings.TrimSpace(req.Method))
	if method == "" {
		method = cubeviz.MethodKociemba
	}
	if strings.TrimSpace(req.ScrambleMoves) == "" {
		s.reply(c, method, http.StatusBadRequest, solver.Response{Error: wireError(errNoScramble)})
		return
	}

	res, err := Solve(req.ScrambleMoves, method)
	s.latency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.reply(c, method, http.StatusBadRequest, solver.Response{Error: wireError(err)})
		return
	}

	s.reply(c, method, http.StatusOK, solver.Response{
		Solution:     res.Solution,
		FullSolution: res.FullSolution,
		Metadata:     res.Metadata,
	})
}

func (s *Server) reply(c *gin.Context, method cubeviz.Method, status int, body solver.Response) {
	s.requests.WithLabelValues(string(method), http.StatusText(status)).Inc()
	logger := s.logger.With("request", c.GetString("request_id"), "method", method, "status", status)
	if body.Error != "" {
		logger.Warn("solve rejected", "error", body.Error)
	} else {
		logger.Info("solve served", "solution", body.Solution)
	}
	c.JSON(status, body)
}

// wireError maps a solve error to the message clients display.
func wireError(err error) string {
	switch {
	case errors.Is(err, errNoScramble):
		return "No scramble provided"
	case errors.Is(err, errInvalidMethod):
		return "Invalid method specified"
	case errors.Is(err, cubeviz.ErrInvalidMove):
		return "invalid scramble"
	default:
		return err.Error()
	}
}
