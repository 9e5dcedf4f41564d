package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"postwatch/internal/bot"
	"postwatch/internal/config"
	pgRepo "postwatch/internal/infra/adapter/persistence/postgres"
	"postwatch/internal/infra/db"
	"postwatch/internal/infra/feed"
	"postwatch/internal/infra/messenger"
	"postwatch/internal/infra/worker"
	"postwatch/internal/infra/youtube"
	"postwatch/internal/usecase/check"
	"postwatch/internal/usecase/notify"
)

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Debug {
		logger.Info("running in testing mode, all pings suppressed")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database unavailable", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	linkRepo := pgRepo.NewChannelLinkRepo(database)
	postRepo := pgRepo.NewPostRepo(database)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redditCfg, err := feed.LoadClientConfig(cfg.RedditClientFile)
	if err != nil {
		logger.Error("reddit client config error", slog.Any("error", err))
		os.Exit(1)
	}
	httpClient := &http.Client{Timeout: 20 * time.Second}
	redditFetcher := feed.NewRedditFetcher(httpClient, redditCfg.UserAgent)

	youtubeFetcher, err := youtube.NewPlaylistFetcher(ctx, cfg.YouTubeCredentialsFile)
	if err != nil {
		logger.Error("youtube client error", slog.Any("error", err))
		os.Exit(1)
	}

	discordBot, err := bot.New(cfg.DiscordToken, linkRepo)
	if err != nil {
		logger.Error("discord session error", slog.Any("error", err))
		os.Exit(1)
	}
	if err := discordBot.Start(); err != nil {
		logger.Error("discord connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := discordBot.Stop(); err != nil {
			logger.Error("failed to close discord session", slog.Any("error", err))
		}
	}()

	dispatcher := notify.NewDispatcher(messenger.NewDiscord(discordBot.Session()), cfg.Debug)

	opts := check.Options{
		LinkTimeout:        cfg.LinkTimeout,
		MaxConcurrentLinks: cfg.MaxConcurrentLinks,
		Debug:              cfg.Debug,
	}
	checkers := []check.Checker{
		check.NewYouTubeChecker(linkRepo, postRepo, youtubeFetcher, dispatcher, opts),
		check.NewRedditChecker(linkRepo, postRepo, redditFetcher, dispatcher, opts),
	}

	metrics := worker.NewCheckerMetrics(prometheus.DefaultRegisterer)
	metricsServer := startMetricsServer(logger, cfg.MetricsPort)
	defer shutdownMetricsServer(metricsServer, logger)

	sweeper := worker.NewSweeper(postRepo, cfg.Retention, metrics)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		logger.Error("sweep schedule error", slog.Any("error", err))
		os.Exit(1)
	}
	defer sweeper.Stop()

	logger.Info("postwatch started",
		slog.Duration("check_interval", cfg.CheckInterval),
		slog.Int("checkers", len(checkers)))

	scheduler := check.NewScheduler(cfg.CheckInterval, checkers, metrics)
	scheduler.Run(ctx)

	logger.Info("postwatch stopped")
}

func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
