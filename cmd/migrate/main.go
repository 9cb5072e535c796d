// migrate aplica el esquema de inventario y reconocimientos con goose.
//
// Uso: go run ./cmd/migrate [up|down|status]
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/medstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medstock-api/pkg/config"
	"github.com/jhoicas/medstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), direction); err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migraciones")
	}
	log.Info().Str("direction", direction).Msg("migraciones aplicadas")
}
