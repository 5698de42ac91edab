package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/db"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/migrate"
)

type dbCommand func(ctx context.Context, sqlDB *sql.DB, dialect, dir string, logg *logger.Logger) error

func gooseCommand(name string) dbCommand {
	return func(ctx context.Context, sqlDB *sql.DB, dialect, dir string, logg *logger.Logger) error {
		return migrate.Run(ctx, sqlDB, dialect, dir, name, logg)
	}
}

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name for -cmd=create")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "lushka-migrate"})
	ctx := logg.WithFields(context.Background(), map[string]any{"cmd": *cmd, "dir": *dir})

	switch *cmd {
	case "create":
		path, err := migrate.CreateSQLMigration(*dir, *name, time.Now())
		exitOnError(ctx, logg, "create migration", err)
		fmt.Println("created migration:", path)
		return
	case "validate":
		exitOnError(ctx, logg, "validate migrations", migrate.ValidateDir(*dir))
		fmt.Println("migrations are valid")
		return
	}

	commands := map[string]dbCommand{
		"up":     gooseCommand("up"),
		"down":   gooseCommand("down"),
		"status": gooseCommand("status"),
		"version": func(ctx context.Context, sqlDB *sql.DB, dialect, dir string, logg *logger.Logger) error {
			if strings.TrimSpace(*version) == "" {
				return fmt.Errorf("-version is required for -cmd=version")
			}
			return migrate.MigrateToVersion(ctx, sqlDB, dialect, dir, *version, logg)
		},
	}
	run, ok := commands[*cmd]
	if !ok {
		known := make([]string, 0, len(commands))
		for k := range commands {
			known = append(known, k)
		}
		sort.Strings(known)
		exitOnError(ctx, logg, "parse flags", fmt.Errorf("unknown -cmd %q (want create, validate or %s)", *cmd, strings.Join(known, ", ")))
	}

	cfg, err := config.Load()
	exitOnError(ctx, logg, "load config", err)
	logg = logger.New(logger.Options{
		ServiceName: "lushka-migrate",
		Environment: cfg.App.Env,
		Format:      cfg.App.LogFormat,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(context.Background(), map[string]any{"cmd": *cmd, "dir": *dir})

	if !cfg.DB.Enabled() {
		exitOnError(ctx, logg, "load config", fmt.Errorf("%s is required for -cmd=%s", config.EnvDBDSN, *cmd))
	}
	exitOnError(ctx, logg, "validate migrations", migrate.ValidateDir(*dir))

	dbClient, err := db.New(ctx, cfg.DB, logg)
	exitOnError(ctx, logg, "connect database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	exitOnError(ctx, logg, "open sql handle", err)

	dialect := dbClient.Dialect()
	ctx = logg.WithField(ctx, "dialect", dialect)
	logg.Info(ctx, "migrate.start")

	if err := run(ctx, sqlDB, dialect, *dir, logg); err != nil {
		dbClient.Close()
		exitOnError(ctx, logg, "goose "+*cmd, err)
	}
	logg.Info(ctx, "migrate.done")
}

func exitOnError(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "migrate.failed", fmt.Errorf("%s: %w", step, err))
	os.Exit(1)
}
