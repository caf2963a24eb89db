// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"minibank/config"
	"minibank/db"
	"minibank/handler"
	"minibank/logger"
	"minibank/repository"
	"minibank/router"
	"minibank/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewHandler wires the service, handlers and router over the given store.
func NewHandler(store repository.AccountStore) (http.Handler, error) {
	accountService, err := service.NewAccountService(store)
	if err != nil {
		return nil, err
	}

	healthHandler := handler.NewHealthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(accountService)

	return router.NewRouter(healthHandler, accountHandler, transactionHandler), nil
}

// Connection constructors, replaceable in tests.
var (
	connectDB    = db.Connect
	migrateDB    = db.Migrate
	connectRedis = db.ConnectRedis
)

// resources holds the connections opened by buildStore so Run can close them.
type resources struct {
	database *sql.DB
	redis    *redis.Client
}

func (r *resources) Close() {
	if r.redis != nil {
		r.redis.Close()
		r.redis = nil
	}
	if r.database != nil {
		r.database.Close()
		r.database = nil
	}
}

// buildStore returns the configured store and the connections behind it.
// On error every connection it opened is already closed.
func buildStore() (repository.AccountStore, *resources, error) {
	res := &resources{}
	store, err := res.openStore()
	if err != nil {
		res.Close()
		return nil, nil, err
	}
	return store, res, nil
}

func (r *resources) openStore() (repository.AccountStore, error) {
	switch config.AppConfig.Store.Backend {
	case "postgres":
		database, err := connectDB()
		if err != nil {
			return nil, err
		}
		r.database = database

		if err := migrateDB(database); err != nil {
			return nil, err
		}

		var store repository.AccountStore = repository.NewAccountRepository(database, repository.NewTransactionRepository(database))

		if config.AppConfig.Redis.Enabled {
			rdb, err := connectRedis()
			if err != nil {
				return nil, err
			}
			r.redis = rdb
			store = repository.NewCachedAccountRepository(store, rdb, config.AppConfig.Redis.TTL)
		}
		return store, nil
	case "memory":
		return repository.NewMemoryAccountStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.AppConfig.Store.Backend)
	}
}

func Run() {
	logger.Init()
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logger.Configure(config.AppConfig.Log.Level, config.AppConfig.Log.Format); err != nil {
		logger.Log.Fatalf("Error configuring logger: %v", err)
	}
	logger.Log.WithField("store", config.AppConfig.Store.Backend).Info("Configuration loaded successfully")

	store, res, err := buildStore()
	if err != nil {
		logger.Log.Fatalf("Error building account store: %v", err)
	}
	defer res.Close()

	r, err := NewHandler(store)
	if err != nil {
		res.Close()
		logger.Log.Fatalf("Error wiring handlers: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			res.Close()
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		res.Close()
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
