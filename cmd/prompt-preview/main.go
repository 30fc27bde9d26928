package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/appconfig"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	var envFiles []string
	if cfg.EnvFile != "" {
		envFiles = append(envFiles, cfg.EnvFile)
	}
	app, err := appconfig.Load(envFiles...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	logger, err := appconfig.NewLogger(os.Stderr, app.LogLevel, app.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if cfg.Addr == "" {
		cfg.Addr = app.HTTPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := appconfig.OpenStore(ctx, app.Store, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer closeStore()

	gin.SetMode(gin.ReleaseMode)
	srv := &server{
		model:        emotion.NewModel(store, emotion.WithLogger(logger)),
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prompt-preview: %s\n", err.Error())
		closeStore()
		stop()
		os.Exit(1)
	}
	if err := serve(ctx, ln, srv.router(), cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "prompt-preview: %s\n", err.Error())
		closeStore()
		stop()
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address (defaults to AXIS_HTTP_ADDR)")
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Optional .env file with AXIS_* settings")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Grace period for in-flight requests on shutdown")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "Request body limit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  AXIS_STORE=redis go run ./cmd/prompt-preview -addr :8080")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// serve runs the HTTP server on ln until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg Config, logger *slog.Logger) error {
	httpSrv := &http.Server{Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("prompt-preview listening", "addr", ln.Addr().String())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("prompt-preview shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
