package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/centralcaixa/backoffice/internal/config"
	"github.com/centralcaixa/backoffice/internal/coupon"
	couponStore "github.com/centralcaixa/backoffice/internal/coupon/store"
	"github.com/centralcaixa/backoffice/internal/dashboard"
	"github.com/centralcaixa/backoffice/internal/database"
	backofficeHTTP "github.com/centralcaixa/backoffice/internal/http"
	couponHandler "github.com/centralcaixa/backoffice/internal/http/coupon"
	dashboardHandler "github.com/centralcaixa/backoffice/internal/http/dashboard"
	importHandler "github.com/centralcaixa/backoffice/internal/http/importcsv"
	planHandler "github.com/centralcaixa/backoffice/internal/http/plan"
	txHandler "github.com/centralcaixa/backoffice/internal/http/transaction"
	userHandler "github.com/centralcaixa/backoffice/internal/http/user"
	"github.com/centralcaixa/backoffice/internal/importer"
	"github.com/centralcaixa/backoffice/internal/plan"
	planStore "github.com/centralcaixa/backoffice/internal/plan/store"
	"github.com/centralcaixa/backoffice/internal/transaction"
	txStore "github.com/centralcaixa/backoffice/internal/transaction/store"
	"github.com/centralcaixa/backoffice/internal/user"
	userStore "github.com/centralcaixa/backoffice/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	statsStore := dashboard.NewStatsStore(db)

	var (
		transactionService = transaction.NewService(txStore.New(db))
		dashboardService   = dashboard.NewService(transactionService, statsStore)
		couponService      = coupon.NewService(couponStore.New(db))
		planService        = plan.NewService(planStore.New(db))
		userService        = user.NewService(userStore.New(db))
		importService      = importer.NewService()
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		dashboardH   = dashboardHandler.NewHandler(dashboardService)
		couponH      = couponHandler.NewHandler(couponService)
		planH        = planHandler.NewHandler(planService)
		userH        = userHandler.NewHandler(userService, planService)
		importH      = importHandler.NewHandler(importService, transactionService)
	)

	router := backofficeHTTP.New(
		cfg.Auth.Secret,
		transactionH,
		dashboardH,
		couponH,
		planH,
		userH,
		importH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
