package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"careertracker/internal/ai"
	"careertracker/internal/ai/gemini"
	"careertracker/internal/fetch"
	"careertracker/internal/notify"
	"careertracker/internal/repository/postgres"
	"careertracker/internal/secrets"
	"careertracker/internal/source"
	"careertracker/internal/storage"
)

// application is the wired process state shared by serve and fetch.
type application struct {
	config   *Config
	logger   *zap.Logger
	pool     *pgxpool.Pool
	rdb      *redis.Client
	postings *postgres.PostingRepository
	profiles *postgres.ProfileRepository
	runner   *fetch.Runner
	writer   *ai.Writer
}

// buildApplication connects the storage backends and assembles the fetch
// pipeline from configuration.
func buildApplication(ctx context.Context, config *Config, logger *zap.Logger) (*application, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(config.DatabaseURL) == "" {
		return nil, errors.New("database-url is required (set DATABASE_URL or the 'database-url' key in the configuration file)")
	}
	if len(config.Sources) == 0 {
		return nil, errors.New("at least one source must be configured under 'sources'")
	}

	pool, err := storage.NewPool(ctx, config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	appState := &application{
		config:   config,
		logger:   logger,
		pool:     pool,
		postings: postgres.NewPostingRepository(pool),
		profiles: postgres.NewProfileRepository(pool),
	}

	adapters := make([]source.Adapter, 0, len(config.Sources))
	for _, cfg := range config.Sources {
		adapter, err := source.NewAdapter(cfg, logger)
		if err != nil {
			appState.close()
			return nil, err
		}
		adapters = append(adapters, adapter)
	}

	notifier, err := buildNotifier(config.SMTP)
	if err != nil {
		appState.close()
		return nil, err
	}
	if notifier == nil {
		logger.Info("smtp is not configured, digests are disabled")
	}

	var locker fetch.Locker
	if redisURL := strings.TrimSpace(config.RedisURL); redisURL != "" {
		rdb, err := storage.NewRedisClient(ctx, redisURL)
		if err != nil {
			// The lock is an optimization; dedup makes unlocked runs safe.
			logger.Warn("redis is unavailable, running without the fetch lock", zap.Error(err))
		} else {
			appState.rdb = rdb
			locker = storage.NewRunLock(rdb)
		}
	}

	appState.writer, err = buildWriter(ctx, config.AI, logger)
	if err != nil {
		appState.close()
		return nil, err
	}
	if appState.writer == nil {
		logger.Info("ai drafting is disabled")
	}

	appState.runner = fetch.NewRunner(appState.profiles, appState.postings, adapters, notifier, locker, logger)

	return appState, nil
}

func (a *application) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("closing redis client", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func buildNotifier(cfg *SMTPConfig) (notify.Notifier, error) {
	if cfg == nil || strings.TrimSpace(cfg.Host) == "" {
		return nil, nil
	}

	password, err := secrets.Load(secrets.Source{
		Name: "smtp password",
		File: cfg.PasswordFile,
		Env:  "SMTP_PASSWORD",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set smtp.password-file or SMTP_PASSWORD)", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return notify.NewMailer(cfg.Host, cfg.Port, cfg.Username, password, from), nil
}

func buildWriter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*ai.Writer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return ai.NewWriter(generator, logger), nil
}
