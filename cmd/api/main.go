package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tempo-api/internal/application/auth"
	"github.com/jhoicas/Tempo-api/internal/application/billing"
	"github.com/jhoicas/Tempo-api/internal/application/timetracking"
	"github.com/jhoicas/Tempo-api/internal/application/workspace"
	"github.com/jhoicas/Tempo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tempo-api/internal/interfaces/http"
	"github.com/jhoicas/Tempo-api/pkg/config"
	"github.com/jhoicas/Tempo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	entryRepo := postgres.NewTimeEntryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	workspaceUC := workspace.NewUseCase(clientRepo, projectRepo, taskRepo)
	timerUC := timetracking.NewUseCase(entryRepo, taskRepo)
	billingCfg := billing.Config{
		TaxRate:  cfg.Billing.TaxRate,
		Currency: cfg.Billing.Currency,
		DueDays:  cfg.Billing.DueDays,
	}
	generateUC := billing.NewGenerateInvoiceUseCase(
		txRunner, projectRepo, clientRepo, taskRepo, userRepo, invoiceRepo, billingCfg,
	)
	lifecycleUC := billing.NewLifecycleUseCase(invoiceRepo)
	expenseUC := billing.NewExpenseUseCase(expenseRepo, projectRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TimerUC:     timerUC,
		WorkspaceUC: workspaceUC,
		GenerateUC:  generateUC,
		LifecycleUC: lifecycleUC,
		ExpenseUC:   expenseUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
