// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	healthfeature "github.com/harvestchapel/rosterd/internal/app/features/health"
	loginfeature "github.com/harvestchapel/rosterd/internal/app/features/login"
	notificationsfeature "github.com/harvestchapel/rosterd/internal/app/features/notifications"
	schedulesfeature "github.com/harvestchapel/rosterd/internal/app/features/schedules"
	usersfeature "github.com/harvestchapel/rosterd/internal/app/features/users"
	notificationstore "github.com/harvestchapel/rosterd/internal/app/store/notifications"
	schedulestore "github.com/harvestchapel/rosterd/internal/app/store/schedules"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/auth"
	"github.com/harvestchapel/rosterd/internal/app/system/notify"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	users := userstore.New(deps.MongoDatabase)
	schedules := schedulestore.New(deps.MongoDatabase)
	notifications := notificationstore.New(deps.MongoDatabase)

	// Every staffing event is logged and materialized as per-user
	// notification documents.
	emitter := notify.Fanout{
		notify.NewLog(logger),
		notificationstore.NewRecorder(notifications, logger),
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		loginHandler := loginfeature.NewHandler(users, logger)
		api.Mount("/", loginfeature.Routes(loginHandler))

		usersHandler := usersfeature.NewHandler(users, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		schedulesHandler := schedulesfeature.NewHandler(schedules, emitter, logger)
		api.Mount("/schedules", schedulesfeature.Routes(schedulesHandler))

		notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))
	})

	return r, nil
}
