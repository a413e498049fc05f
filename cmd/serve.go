package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"careertracker/internal/httpapi"
	"careertracker/internal/logger"
	"careertracker/internal/schedule"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server with the scheduled fetch pipeline",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the careertracker", zap.String("version", version))

	app, err := buildApplication(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the application", zap.Error(err))
	}
	defer app.close()

	scheduler := schedule.New(app.runner, config.Fetch.IntervalHours, logger)
	if err := scheduler.Start(ctx); err != nil {
		logger.Fatal("starting the scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	api := httpapi.NewServer(app.postings, app.profiles, app.runner, app.writer, logger)
	server := &http.Server{
		Addr:              config.HTTP.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", config.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
}
