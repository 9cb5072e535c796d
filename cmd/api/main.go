package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstock-api/internal/application/alerts"
	"github.com/jhoicas/medstock-api/internal/application/monitor"
	"github.com/jhoicas/medstock-api/internal/domain/alerting"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
	"github.com/jhoicas/medstock-api/internal/infrastructure/memory"
	"github.com/jhoicas/medstock-api/internal/infrastructure/metrics"
	"github.com/jhoicas/medstock-api/internal/infrastructure/notify"
	"github.com/jhoicas/medstock-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/medstock-api/internal/infrastructure/redis"
	"github.com/jhoicas/medstock-api/internal/infrastructure/report"
	"github.com/jhoicas/medstock-api/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/medstock-api/internal/interfaces/http"
	"github.com/jhoicas/medstock-api/pkg/config"
	"github.com/jhoicas/medstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("source", cfg.Source.Kind).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// PostgreSQL: fuente de inventario y/o almacén de reconocimientos.
	var pool *pgxpool.Pool
	if cfg.Source.Kind == config.SourcePostgres || cfg.Alerts.AckStore == config.AckStorePostgres {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	var source repository.InventorySource
	switch cfg.Source.Kind {
	case config.SourceREST:
		source = restapi.New(cfg.Source, log.Component("restapi"))
	default:
		source = postgres.NewInventorySource(pool)
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		source = infraredis.NewCachedSource(source, rdb, cfg.Redis.CacheTTL, log.Component("collection-cache"))
	}

	var acks repository.AcknowledgmentRepository
	switch cfg.Alerts.AckStore {
	case config.AckStoreRedis:
		acks = infraredis.NewAckStore(rdb)
	case config.AckStorePostgres:
		acks = postgres.NewAckStore(pool)
	default:
		acks = memory.NewAckStore()
	}

	threshold, err := decimal.NewFromString(cfg.Alerts.LowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Alerts.LowStockThreshold).Msg("ALERTS_LOW_STOCK_THRESHOLD inválido")
	}
	deriver := alerting.NewDeriver(alerting.Rules{
		ExpiringSoonDays:  cfg.Alerts.ExpiringSoonDays,
		ExpiringWatchDays: cfg.Alerts.ExpiringWatchDays,
		LowStockThreshold: threshold,
	})

	alertUC := alerts.NewAlertUseCase(source, acks, deriver, log.Component("alerts")).
		WithReports(report.NewXLSXGenerator(), report.NewPDFGenerator())

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
		alertUC.WithMetrics(recorder)
	}

	if cfg.Monitor.Enabled {
		notifier := buildNotifier(cfg, log)
		go monitor.New(alertUC, notifier, cfg.Monitor.Interval, log.Component("monitor")).Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MedStock Alerts API",
	}))

	deps := httpRouter.RouterDeps{
		Alerts:      alertUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		ServiceName: cfg.App.Name,
		Log:         log.Component("http"),
	}
	if recorder != nil {
		deps.Metrics = recorder.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildNotifier Telegram si hay token; si no, o si falla la conexión, solo log.
func buildNotifier(cfg *config.Config, log *logger.Logger) monitor.Notifier {
	fallback := notify.NewLog(log.Component("notify"))
	if cfg.Telegram.Token == "" {
		return fallback
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log.Component("telegram"))
	if err != nil {
		log.Warn().Err(err).Msg("Telegram no disponible, se notifica solo por log")
		return fallback
	}
	return tg
}
