package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/color-season/internal/colorseason"
	"github.com/example/color-season/internal/config"
	"github.com/example/color-season/internal/gemini"
	"github.com/example/color-season/internal/handlers"
	"github.com/example/color-season/internal/logging"
	"github.com/example/color-season/internal/metrics"
	"github.com/example/color-season/internal/middleware"
	"github.com/example/color-season/internal/seasons"
	"github.com/example/color-season/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	classifier := initClassifier(ctx, cfg, logger)
	recorder := metrics.NewRecorder()
	uc := usecase.NewAnalysisUseCase(classifier, logger, cfg.Limits.MaxImageBytes, cfg.Gemini.Timeout).
		WithMaxDimension(cfg.Limits.MaxImageDimension).
		WithMetrics(recorder)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(uc, recorder, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Gemini.Timeout + 30*time.Second,
	}

	logger.Info("color season API listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("model", cfg.Gemini.Model),
		zap.Bool("model_configured", uc.Configured()))
	if err := serveHTTPServer(server, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// initClassifier returns nil when no credential is configured so the server
// still starts and reports the misconfiguration per request.
func initClassifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) colorseason.Classifier {
	if !cfg.ModelConfigured() {
		logger.Error("GEMINI_API_KEY is not set; analysis requests will fail until it is configured")
		return nil
	}

	client, err := gemini.NewClient(ctx, &cfg.Gemini)
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}
	return gemini.NewClassifier(client, &cfg.Gemini, logger)
}

func newRouter(uc *usecase.AnalysisUseCase, recorder *metrics.Recorder, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS())

	r.GET("/metrics", gin.WrapH(recorder.Handler()))

	handlers.RegisterRoutes(r, uc, seasons.Default())
	return r
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal, draining in-flight analyses", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
