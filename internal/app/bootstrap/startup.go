// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/timeouts"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// rosterd seeds the bootstrap admin account here so a fresh deployment has a
// way to sign in.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.ConfigureFromEnv()

	return seedAdmin(ctx, appCfg, deps, logger)
}

func seedAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminUsername == "" {
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	exists, err := users.UsernameExists(ctx, appCfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("admin lookup: %w", err)
	}
	if exists {
		return nil
	}

	if appCfg.AdminPassword == "" {
		return fmt.Errorf("admin account %q does not exist and admin_password is not set", appCfg.AdminUsername)
	}

	_, err = users.Create(ctx, models.User{
		Username: appCfg.AdminUsername,
		FullName: appCfg.AdminFullName,
		Email:    appCfg.AdminEmail,
		Role:     "admin",
	}, appCfg.AdminPassword)
	if err != nil {
		// Two instances racing on first boot: the other one won, that's fine.
		if errors.Is(err, userstore.ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("bootstrap admin created",
		zap.String("username", appCfg.AdminUsername))
	return nil
}
