package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/open-builders/questbot/internal/answers"
	"github.com/open-builders/questbot/internal/common/config"
	"github.com/open-builders/questbot/internal/common/logger"
	apphttp "github.com/open-builders/questbot/internal/http"
	"github.com/open-builders/questbot/internal/pacing"
	"github.com/open-builders/questbot/internal/platform/crew3"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/platform/telegram"
	"github.com/open-builders/questbot/internal/report"
	repo "github.com/open-builders/questbot/internal/repository/redis"
	"github.com/open-builders/questbot/internal/service/batch"
	"github.com/open-builders/questbot/internal/session"
	"github.com/open-builders/questbot/internal/workers"
)

// @title           Questbot operator API
// @version         1.0
// @description     Manage quest platform accounts, claim quests and run batch jobs. All endpoints require admin init_data authentication.

// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string of an admin

// @tag.name accounts
// @tag.description Managed accounts and their profiles

// @tag.name communities
// @tag.description Community directory and membership

// @tag.name quests
// @tag.description Quest boards and single claims

// @tag.name answers
// @tag.description Recorded answers of knowledge quests

// @tag.name jobs
// @tag.description Batch claim, join, leave, answers and enroll runs

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init("questbot", cfg.Debug)

	rdb, err := rplatform.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	logger.Info().Str("addr", cfg.RedisAddr()).Msg("Redis connection established")

	var store interface {
		answers.Store
		Records(ctx context.Context, community string) ([]answers.Record, error)
	}
	switch cfg.Answers.Backend {
	case "memory":
		store = answers.NewMemoryStore(cfg.Answers.Location)
	default:
		store = answers.NewRedisStore(rdb, cfg.Answers.Location)
	}

	pacer := pacing.Jittered{}
	factory := crew3.NewFactory(crew3.Options{
		APIURL:     cfg.Platform.APIURL,
		SiteURL:    cfg.Platform.SiteURL,
		ClaimToken: cfg.Platform.ClaimToken,
		UserAgent:  cfg.Platform.UserAgent,
		Timeout:    cfg.Platform.HTTPTimeout,
		PagePacing: cfg.Pacing.Page,
	}, pacer, logger.Component("crew3"))

	roster := repo.NewRoster(rdb)
	orchestrator := batch.New(
		roster,
		func(cred session.Credential) batch.Profile { return factory.For(cred) },
		store,
		pacer,
		batch.Pacing{Claim: cfg.Pacing.Claim, Short: cfg.Pacing.Short, Community: cfg.Pacing.Community},
		logger.Component("batch"),
	)

	reportLog := report.NewRedisLog(rdb, report.DefaultRetention)
	var tgReporter report.Reporter
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ReportChatID != 0 {
		tgReporter = telegram.NewReporter(telegram.NewClient(cfg.Telegram.BotToken, "", logger.Component("telegram")), cfg.Telegram.ReportChatID)
	}
	reportLogger := report.LogReporter{Logger: logger.Component("report")}
	reports := func(jobID string) report.Reporter {
		return report.Fanout{reportLog.For(jobID), tgReporter, reportLogger}
	}

	queue := workers.NewJobQueue(rdb)
	worker := workers.NewRedisStreamWorker(rdb, queue, orchestrator, reports, logger.Component("worker"))
	go worker.Start(ctx)

	scheduler, err := workers.NewScheduler(roster, queue, logger.Component("scheduler"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.Start(ctx, cfg.Schedule.DailyClaim); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	router := apphttp.NewRouter(apphttp.Deps{
		Config:    cfg,
		Roster:    roster,
		Connect:   func(cred session.Credential) apphttp.Profile { return factory.For(cred) },
		Answers:   store,
		Referrals: orchestrator,
		Jobs:      queue,
		Reports:   reportLog,
		Cache:     rdb,
		Pacer:     pacer,
		Logger:    logger.Component("http"),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := scheduler.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Scheduler shutdown failed")
	}
	logger.Info().Msg("Server exited")
}
