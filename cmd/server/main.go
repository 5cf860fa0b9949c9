package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yahyarisas/spark-app/internal/config"
	"github.com/yahyarisas/spark-app/internal/lookup"
	"github.com/yahyarisas/spark-app/internal/prediction"
	"github.com/yahyarisas/spark-app/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("config error")
	}

	log := newLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	var source lookup.Source
	var db server.HealthChecker
	if cfg.EnableDB {
		store, err := lookup.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer store.Close()
		source = store
		db = store
	} else if cfg.DatasetPath != "" {
		dataset, err := lookup.LoadDataset(cfg.DatasetPath)
		if err != nil {
			// The bundled dataset is optional; the screening wizard just
			// loses lookup pre-fill without it.
			log.Warn().Err(err).Str("path", cfg.DatasetPath).Msg("lookup dataset not loaded")
		} else {
			log.Info().Int("rows", dataset.Len()).Str("path", cfg.DatasetPath).Msg("lookup dataset loaded")
			source = dataset
		}
	}

	client := prediction.NewClient(cfg.PredictURL, cfg.SubjectPredictURL, log)
	srv := server.New(client, source, db, log)

	staticRoot := cfg.StaticRoot
	if staticRoot == "" {
		staticRoot = detectStaticRoot()
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(staticRoot),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("server listening")
	waitForShutdown(httpServer, log)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func waitForShutdown(srv *http.Server, log zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// detectStaticRoot walks up from the working directory looking for the
// frontend's index.html, so the binary works both from the repo root
// and from cmd/server.
func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "web", "index.html")) {
			return filepath.Join(dir, "web")
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
