package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/acuaflow/acuaflow-api/internal/application/auth"
	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/application/replenishment"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
	"github.com/acuaflow/acuaflow-api/internal/infrastructure/mail"
	infrapdf "github.com/acuaflow/acuaflow-api/internal/infrastructure/pdf"
	"github.com/acuaflow/acuaflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/acuaflow/acuaflow-api/internal/interfaces/http"
	"github.com/acuaflow/acuaflow-api/pkg/config"
	"github.com/acuaflow/acuaflow-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	locationRepo := postgres.NewOrgLocationRepository(pool)
	customerRepo := postgres.NewCustomerProfileRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	levelRepo := postgres.NewReplenishmentLevelRepository(pool)
	replOrderRepo := postgres.NewReplenishmentOrderRepository(pool)
	counterRepo := postgres.NewStockOutCounterRepository(pool)
	historyRepo := postgres.NewStockOutHistoryRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: transporte SMTP + registro en DB
	sender := mail.NewGomailSender(cfg.SMTP)
	dispatcher := notification.NewDispatcher(sender, notificationRepo)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	organizationUC := usecase.NewOrganizationUseCase(orgRepo, locationRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo)

	// PDF: recibo del pedido
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo, cartRepo, receiptGenerator)
	deliveryUC := usecase.NewDeliveryUseCase(deliveryRepo, orderRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, orderRepo)

	replenishmentUC := replenishment.NewUseCase(
		levelRepo, counterRepo, historyRepo, replOrderRepo,
		locationRepo, orgRepo, userRepo, productRepo,
		txRunner, dispatcher, cfg.Replenishment, log.Component("replenishment"),
	)
	notificationUC := notification.NewUseCase(notificationRepo)

	// Generación semanal programada de órdenes de reposición.
	// Vacío = sin scheduler; la corrida queda disponible por la API.
	var scheduler *cron.Cron
	if cfg.Replenishment.WeeklyCron != "" {
		schedLog := log.Component("scheduler")
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Replenishment.WeeklyCron, func() {
			runCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			out, err := replenishmentUC.GenerateWeeklyOrders(runCtx, time.Now())
			if err != nil {
				schedLog.Error().Err(err).Msg("generación semanal de órdenes")
				return
			}
			schedLog.Info().
				Int("ordenes", len(out.Orders)).
				Int("fallidas", len(out.Failed)).
				Msg("generación semanal de órdenes completada")
		})
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Replenishment.WeeklyCron).Msg("expresión cron inválida")
		}
		scheduler.Start()
		schedLog.Info().Str("cron", cfg.Replenishment.WeeklyCron).Msg("scheduler semanal iniciado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AcuaFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          userUC,
		ProductUC:       productUC,
		OrganizationUC:  organizationUC,
		CustomerUC:      customerUC,
		CartUC:          cartUC,
		OrderUC:         orderUC,
		DeliveryUC:      deliveryUC,
		PaymentUC:       paymentUC,
		ReplenishmentUC: replenishmentUC,
		NotificationUC:  notificationUC,
		Dispatcher:      dispatcher,
		JWTSecret:       cfg.JWT.Secret,
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

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
