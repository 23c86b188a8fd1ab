package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quantumfinance/internal/api"
	"quantumfinance/internal/api/handlers"
	"quantumfinance/internal/charts"
	"quantumfinance/internal/dataset"
	"quantumfinance/internal/repository"
	"quantumfinance/internal/rules"
	"quantumfinance/internal/service"
	"quantumfinance/pkg/auth"
	"quantumfinance/pkg/config"
	"quantumfinance/pkg/logger"
	"quantumfinance/pkg/postgres"

	"go.uber.org/zap"
)

// @title QuantumFinance API
// @version 1.0
// @description Rule-based product recommendations for bank customers

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// quantumfinance hash-password <password> prints a value for AUTH_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := auth.HashPassword(os.Args[2])
		if err != nil {
			fmt.Printf("Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting QuantumFinance dashboard", zap.String("data_source", cfg.Data.Source))

	if err := dataset.ValidateSourceName(cfg.Data.Source); err != nil {
		appLogger.Fatal("Invalid data source", zap.Error(err))
	}

	ctx := context.Background()

	var source dataset.Source
	switch cfg.Data.Source {
	case dataset.SourcePostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		repoLogger := logger.Component("repository")
		source = dataset.NewPostgresSource(
			repository.NewUserRepository(db, repoLogger),
			repository.NewProductRepository(db, repoLogger),
			repository.NewTransactionRepository(db, repoLogger),
			repository.NewInteractionRepository(db, repoLogger),
		)
	default:
		source = dataset.NewCSVSource(cfg.Data.Dir)
	}

	evaluator := rules.NewEvaluator()
	recService := service.NewRecommendationService(source, evaluator, logger.Component("recommendations"))
	if _, err := recService.Load(ctx); err != nil {
		appLogger.Fatal("Failed to load dataset", zap.Error(err))
	}

	var generator service.TextGenerator
	if cfg.GigaChat.Enabled() {
		llmService, err := service.NewLLMService(&cfg.GigaChat, logger.Component("llm"))
		if err != nil {
			// the dashboard works without the advisor
			appLogger.Error("Failed to initialize LLM service, advisor disabled", zap.Error(err))
		} else {
			defer llmService.Close()
			generator = llmService
		}
	} else {
		appLogger.Info("GIGACHAT_API_KEY not set, advisor disabled")
	}
	advisor := service.NewAdvisorService(generator, logger.Component("advisor"))

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(cfg.Auth, jwtManager, logger.Component("auth"))
	if cfg.Auth.Enabled && cfg.Auth.PasswordHash == "" {
		appLogger.Warn("AUTH_PASSWORD_HASH is empty, login is impossible")
	}

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(recService, advisor, charts.NewChartGenerator(), appLogger)

	app := api.SetupRouter(api.RouterConfig{
		AuthHandler:      authHandler,
		DashboardHandler: dashboardHandler,
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.Auth.Enabled,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting",
			zap.String("address", addr),
			zap.Strings("rules", evaluator.Rules()),
		)
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
