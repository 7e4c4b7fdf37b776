package app

import (
	"net/http"

	"budget-app-go/internal/config"
	"budget-app-go/internal/db"
	budgetsdomain "budget-app-go/internal/domain/budgets"
	ledgerdomain "budget-app-go/internal/domain/ledger"
	reportsdomain "budget-app-go/internal/domain/reports"
	userdomain "budget-app-go/internal/domain/user"
	budgetsrepo "budget-app-go/internal/repository/postgres/budgets"
	ledgerrepo "budget-app-go/internal/repository/postgres/ledger"
	reportsrepo "budget-app-go/internal/repository/postgres/reports"
	userrepo "budget-app-go/internal/repository/postgres/user"
	"budget-app-go/internal/token"
	"budget-app-go/internal/transport/httpserver"
	"budget-app-go/internal/transport/httpserver/handler"
	authmw "budget-app-go/internal/transport/httpserver/middleware"
	"budget-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn, cfg.DB.MigrationsPath); err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(cfg.Security)
	if err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	ledger := ledgerdomain.NewService(ledgerrepo.NewPostgres(dbConn))
	budgets := budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn))
	reports := reportsdomain.NewService(reportsrepo.NewPostgres(dbConn))

	handlers := handler.New(users, ledger, budgets, reports, tokens, log)
	auth := authmw.NewAuthenticator(tokens, users, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(handlers, auth, log)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
