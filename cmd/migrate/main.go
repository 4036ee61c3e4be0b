package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/comprae/marketplace/internal/config"
	"github.com/comprae/marketplace/internal/logger"
)

func main() {
	_ = godotenv.Load()

	dsn := flag.String("d", os.Getenv("DATABASE_URI"), "database URI")
	flag.Parse()

	log := logger.New(&config.Config{LogLevel: os.Getenv("LOG_LEVEL")})
	cmd, err := parseCommand(flag.Args())
	if err != nil {
		log.Error("invalid arguments", slog.String("error", err.Error()))
		os.Exit(2)
	}
	if err := run(*dsn, cmd, log); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
