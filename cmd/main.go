package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AgentTarik/pizzeria-api/docs"
	"github.com/AgentTarik/pizzeria-api/internal/api"
	"github.com/AgentTarik/pizzeria-api/internal/auth"
	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/AgentTarik/pizzeria-api/internal/efipay"
	"github.com/AgentTarik/pizzeria-api/internal/kafka"
	"github.com/AgentTarik/pizzeria-api/internal/outbox"
	"github.com/AgentTarik/pizzeria-api/internal/payment"
	"github.com/AgentTarik/pizzeria-api/internal/storage"
	"github.com/AgentTarik/pizzeria-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log, _ := telemetry.NewLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	telemetry.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// storage: postgres when DATABASE_URL is set, otherwise in memory
	var store storage.SeedRepo
	var dbPing func(context.Context) error
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres", zap.Error(err))
		}
		defer pg.DB.Close()
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
		store, dbPing = pg, pg.DB.PingContext
		log.Info("using postgres store")
	} else {
		store = storage.NewMemoryStore()
		log.Info("using in-memory store")
	}
	if err := storage.ApplySeed(ctx, store, cfg.Seed); err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	v := api.NewValidator()

	// events: kafka when configured, otherwise logged
	var pub outbox.Publisher = outbox.LogPublisher{Log: log}
	var schema outbox.Validator
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		pub = producer

		sv, err := kafka.NewValidator()
		if err != nil {
			log.Fatal("event schema", zap.Error(err))
		}
		schema = sv
		log.Info("kafka enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	worker := outbox.NewWorker(log, pub, schema, 100)
	go worker.Run(ctx)

	svc := &payment.Service{
		Log:      log,
		Orders:   store,
		Settings: store,
		Defaults: cfg.Pix,
		Events:   func(e outbox.PixGenerated) { worker.Enqueue(e) },
	}
	if cfg.EfiPay.Enabled() {
		client, err := efipay.NewFromConfig(log, cfg.EfiPay)
		if err != nil {
			log.Fatal("efipay", zap.Error(err))
		}
		svc.Charger = client
		log.Info("efipay dynamic charges enabled", zap.Bool("sandbox", cfg.EfiPay.Sandbox))
	} else {
		log.Info("efipay not configured; using static pix payloads")
	}

	h := &api.Handlers{
		Log:      log,
		Payments: svc,
		Settings: store,
		Hours:    store,
		V:        v,
		Location: cfg.Location,
		DBPing:   dbPing,
		Kafka:    cfg.Kafka,
	}

	var ah *api.AuthHandlers
	if cfg.JWT.Secret != "" {
		issuer, err := auth.NewJWTIssuer(cfg.JWT)
		if err != nil {
			log.Fatal("jwt", zap.Error(err))
		}
		ah = &api.AuthHandlers{Log: log, Staff: store, V: v, Tokens: issuer}
	} else {
		log.Warn("JWT_SECRET not set; staff routes disabled")
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.PrometheusMiddleware())

	// middleware de log http simples
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
		)
	})

	api.SetupRoutes(r, h, ah, cfg.JWT)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.String("timezone", cfg.Timezone))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
	log.Info("server stopped")
}
