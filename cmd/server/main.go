package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sistemabancario/corebank/internal/adapter/httpapi"
	"github.com/sistemabancario/corebank/internal/adapter/repository/postgres"
	"github.com/sistemabancario/corebank/internal/config"
	"github.com/sistemabancario/corebank/internal/usecase/accounts"
	"github.com/sistemabancario/corebank/internal/usecase/history"
	"github.com/sistemabancario/corebank/internal/usecase/transfer"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 1. Load configuration
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	// 2. Setup database
	db, err := postgres.NewDB(cfg.ConnString())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 3. Initialize repositories (Postgres)
	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	users := postgres.NewUserDirectory(db)
	units := postgres.NewUnitBeginner(db)
	audit := postgres.NewAuditLog(db, log)

	// 4. Initialize services (use cases)
	transferService := transfer.NewService(units, audit, log)
	accountService := accounts.NewService(accountRepo, users)
	historyService := history.NewService(accountRepo, ledgerRepo)

	// 5. Start HTTP server
	handlers := httpapi.NewHandlers(transferService, accountService, historyService)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: httpapi.NewRouter(handlers, log),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to serve", zap.Error(err))
		}
	}()

	waitForShutdown(server, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, log *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("shutting down gracefully", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("forced shutdown", zap.Error(err))
	}

	log.Info("HTTP server stopped")
}
