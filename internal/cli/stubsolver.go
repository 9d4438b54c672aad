package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/TheDeepDelve/cubeviz/internal/stubsolver"
)

var stubAddr string

var stubSolverCmd = &cobra.Command{
	Use:   "stub-solver",
	Short: "Run a local solver service",
	Long: `Run a local HTTP service that implements the solver contract
(POST /solve, GET /health, GET /metrics).

The stub returns the inverse of the scramble; it does not search for short
solutions. The human_hybrid method prepends a T-perm and undoes it.`,
	RunE: runStubSolver,
}

func init() {
	stubSolverCmd.Flags().StringVar(&stubAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(stubSolverCmd)
}

func runStubSolver(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if stubAddr != "" {
		cfg.Stub.Address = stubAddr
	}

	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Stub.Address,
		Handler:           stubsolver.NewServer(logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub solver listening", "addr", cfg.Stub.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub solver failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
