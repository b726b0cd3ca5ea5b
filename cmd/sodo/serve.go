package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "svw.info/sodo/internal/adapters/http"
	"svw.info/sodo/internal/config"
	"svw.info/sodo/internal/generator"
	"svw.info/sodo/internal/hint"
	"svw.info/sodo/internal/infrastructure/storage"
	"svw.info/sodo/internal/ports"
	"svw.info/sodo/internal/solver"
	"svw.info/sodo/internal/usecase"
	"svw.info/sodo/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newServeCmd() *cobra.Command {
	var configPath string
	var addr, dataDir, solverKind, storageKind, logLevel string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// flags override the file
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("data") {
				cfg.Server.DataDir = dataDir
			}
			if cmd.Flags().Changed("solver") {
				cfg.Server.Solver = solverKind
			}
			if cmd.Flags().Changed("storage") {
				cfg.Server.Storage = storageKind
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Server.LogLevel = logLevel
			}
			return runServer(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dataDir, "data", "./data", "save directory")
	cmd.Flags().StringVar(&solverKind, "solver", "backtrack", "solver to use: backtrack|dlx")
	cmd.Flags().StringVar(&storageKind, "storage", "fs", "puzzle store: fs|badger")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	return cmd
}

func runServer(cfg config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Server.LogLevel),
	}))

	var s ports.Solver
	switch strings.ToLower(strings.TrimSpace(cfg.Server.Solver)) {
	case "dlx":
		s = solver.NewDLXSolver()
	default:
		s = solver.NewBacktrackingSolver()
	}

	tuning, err := cfg.Tuning()
	if err != nil {
		return err
	}
	gen := generator.NewUniqueGenerator(s)
	gen.Tuning = tuning

	var st ports.Storage
	switch strings.ToLower(strings.TrimSpace(cfg.Server.Storage)) {
	case "badger":
		b, err := storage.NewBadger(cfg.Server.DataDir)
		if err != nil {
			return fmt.Errorf("open badger store: %w", err)
		}
		st = b
	default:
		if err := os.MkdirAll(cfg.Server.DataDir, 0o755); err != nil {
			return err
		}
		st = storage.NewFS(cfg.Server.DataDir)
	}
	if c, ok := st.(io.Closer); ok {
		defer c.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	uc := usecase.NewService(s, gen, validator.New(), hint.NewStepHinter(s), st)
	h := httpadapter.New(uc, httpadapter.NewMetrics(reg))

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening",
		"addr", cfg.Server.Addr,
		"data", cfg.Server.DataDir,
		"solver", cfg.Server.Solver,
		"storage", cfg.Server.Storage,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		return err
	}
	return nil
}
