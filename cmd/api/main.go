package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bic-devsphere/devsphere-backend/internal/api"
	"github.com/bic-devsphere/devsphere-backend/internal/api/handlers"
	"github.com/bic-devsphere/devsphere-backend/internal/audit"
	"github.com/bic-devsphere/devsphere-backend/internal/auth"
	"github.com/bic-devsphere/devsphere-backend/internal/config"
	"github.com/bic-devsphere/devsphere-backend/internal/db"
	"github.com/bic-devsphere/devsphere-backend/internal/github"
	"github.com/bic-devsphere/devsphere-backend/internal/images"
	"github.com/bic-devsphere/devsphere-backend/internal/jobs"
	"github.com/bic-devsphere/devsphere-backend/internal/logger"
	"github.com/bic-devsphere/devsphere-backend/internal/metrics"
	"github.com/bic-devsphere/devsphere-backend/internal/middleware"
	"github.com/bic-devsphere/devsphere-backend/internal/repository"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
	"github.com/bic-devsphere/devsphere-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
	}

	metrics.Init()

	// Every mutation issued through the repositories passes the audit
	// interceptor before it reaches Postgres.
	pg := store.NewPG(pool)
	audited := audit.Wrap(pg, log, cfg.AuditDebug)
	repos := repository.New(audited)

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	var imageStore services.ImageStore
	if cfg.S3Bucket != "" {
		s3Store, err := images.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Error("s3 init failed", "err", err)
			os.Exit(1)
		}
		imageStore = s3Store
	} else {
		log.Warn("S3_BUCKET not set, event image uploads disabled")
	}

	gh := github.NewClient(cfg.GithubToken, cfg.GithubOrg)

	authSvc := services.NewAuthService(repos.Users, tm)
	memberSvc := services.NewMemberService(repos.Members)
	eventSvc := services.NewEventService(repos.Events, imageStore, log)
	projectSvc := services.NewProjectService(repos.Projects, repos.Tags)
	tagSvc := services.NewTagService(repos.Tags)
	contributorSvc := services.NewContributorService(repos.Projects, repos.Contributors, gh, log)
	userSvc := services.NewUserService(repos.Users)
	auditSvc := services.NewAuditService(repos.AuditLogs)

	pool2 := worker.NewPool(4)
	defer pool2.Stop()

	sched, err := jobs.New(contributorSvc, cfg.ContributorSyncSpec, log)
	if err != nil {
		log.Error("cron setup failed", "err", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(api.Deps{
		Auth:         handlers.NewAuthHandler(authSvc),
		Members:      handlers.NewMemberHandler(memberSvc),
		Events:       handlers.NewEventHandler(eventSvc),
		Projects:     handlers.NewProjectHandler(projectSvc, contributorSvc, pool2, log),
		Tags:         handlers.NewTagHandler(tagSvc),
		Contributors: handlers.NewContributorHandler(contributorSvc),
		Users:        handlers.NewUserHandler(userSvc),
		Audits:       handlers.NewAuditHandler(auditSvc),
		AuthMW:       middleware.NewAuthMiddleware(tm),
		RateRPS:      cfg.RateRPS,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server listening", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
