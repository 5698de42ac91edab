package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/db"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
)

// MaybeAutoMigrate applies pending migrations from dir at API startup when
// LUSHKA_DB_AUTO_MIGRATE is set. Production ignores the flag; deployments
// migrate through cmd/migrate.
func MaybeAutoMigrate(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client, dir string) error {
	if client == nil || cfg == nil || !cfg.DB.AutoMigrate {
		return nil
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": dir, "dialect": client.Dialect()})
	if cfg.App.IsProd() {
		logg.Warn(ctx, "migrate.auto_skipped")
		return nil
	}

	if err := ValidateDir(dir); err != nil {
		return err
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	if err := Run(ctx, sqlDB, client.Dialect(), dir, "up", logg); err != nil {
		return err
	}
	logg.Info(ctx, "migrate.auto_applied")
	return nil
}
