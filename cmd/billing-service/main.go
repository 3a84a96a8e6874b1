package main

import (
	"fmt"
	"os"

	"github.com/h2316307-design/adhub-pro-sub002/internal/auth"
	"github.com/h2316307-design/adhub-pro-sub002/internal/config"
	"github.com/h2316307-design/adhub-pro-sub002/internal/db"
	"github.com/h2316307-design/adhub-pro-sub002/internal/excel"
	httphandler "github.com/h2316307-design/adhub-pro-sub002/internal/http"
	"github.com/h2316307-design/adhub-pro-sub002/internal/http/middleware"
	"github.com/h2316307-design/adhub-pro-sub002/internal/logger"
	"github.com/h2316307-design/adhub-pro-sub002/internal/pdf"
	"github.com/h2316307-design/adhub-pro-sub002/internal/repository"
	"github.com/h2316307-design/adhub-pro-sub002/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)

	contractService := service.NewContractService(contractRepo, cfg)
	paymentService := service.NewPaymentService(paymentRepo)

	workbookGenerator := excel.NewGenerator()
	receiptGenerator := pdf.NewGenerator()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, paymentService, workbookGenerator, receiptGenerator, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
