// migrate aplica o revierte el esquema de PostgreSQL embebido en el binario.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Sin argumentos ejecuta up. La conexión se toma de DATABASE_URL o DB_*.
package main

import (
	"fmt"
	"os"

	"github.com/crucitafashion/crucita-api/internal/infrastructure/postgres/migrations"
	"github.com/crucitafashion/crucita-api/pkg/config"
	"github.com/crucitafashion/crucita-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name}).Component("migrate")
	dsn := cfg.DB.ConnectionString()

	switch cmd {
	case "up":
		err = migrations.Up(dsn)
	case "down":
		err = migrations.Down(dsn)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = migrations.Version(dsn)
		if err == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado del esquema")
			return
		}
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up|down|version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", cmd).Msg("migración completada")
}
