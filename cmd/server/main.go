// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	adminhandler "breakpoint/internal/admin/handler"
	adminmw "breakpoint/internal/admin/middleware"
	"breakpoint/internal/admin/service"
	"breakpoint/internal/admin/token"
	"breakpoint/internal/audit"
	auditkafka "breakpoint/internal/audit/kafka"
	auditfile "breakpoint/internal/audit/store/file"
	contacthandler "breakpoint/internal/contact/handler"
	contactstore "breakpoint/internal/contact/store"
	"breakpoint/internal/platform/config"
	"breakpoint/internal/platform/httpserver"
	"breakpoint/internal/platform/logger"
	"breakpoint/internal/platform/metrics"
	platformredis "breakpoint/internal/platform/redis"
	"breakpoint/internal/ratelimit"
	httptransport "breakpoint/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Production())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set; admin login will fail with a configuration error")
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set; token issuance will fail")
	}

	auditStore, err := auditfile.New(cfg.AuditLogPath)
	if err != nil {
		log.Error("open audit log", "path", cfg.AuditLogPath, "error", err)
		os.Exit(1)
	}

	recorderOpts := audit.Options{
		Echo:    !cfg.Production(),
		Dropped: m.AuditEntriesDropped,
	}
	var kafkaPub *auditkafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err = auditkafka.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		if err != nil {
			log.Error("connect kafka audit publisher", "error", err)
			os.Exit(1)
		}
		defer kafkaPub.Close()
		recorderOpts.Publisher = kafkaPub
		log.Info("audit entries mirrored to kafka", "topic", cfg.KafkaAuditTopic)
	}
	recorder := audit.NewRecorder(auditStore, log, recorderOpts)

	var contacts contactstore.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := contactstore.NewPostgres(pool)
		if err := pg.Migrate(context.Background()); err != nil {
			log.Error("migrate contact store", "error", err)
			os.Exit(1)
		}
		contacts = pg
	} else {
		log.Warn("DATABASE_URL not set; contact submissions held in memory only")
		contacts = contactstore.NewInMemoryStore()
	}

	var limiterStore ratelimit.FailureStore
	if cfg.RedisURL != "" {
		rdb, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiterStore = ratelimit.NewRedisFailureStore(rdb.Client)
	} else {
		limiterStore = ratelimit.NewInMemoryFailureStore()
	}
	limiter := ratelimit.New(limiterStore, cfg.LoginLimit, cfg.LoginWindow)

	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)
	svc := service.New(nil, tokens, contacts, auditStore, recorder, log, m, cfg.AdminPasswordHash)

	router := httptransport.NewRouter(
		adminhandler.New(svc, limiter, log),
		contacthandler.New(contacts, log, m),
		ratelimit.Middleware(limiter, recorder, m.LoginsThrottled, log),
		adminmw.RequireToken(tokens, recorder, log),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := recorder.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info("starting breakpoint api", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	recorder.Flush()
	log.Info("shutdown complete")
}
