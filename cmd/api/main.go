package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/infrastructure/cfdi"
	infrapdf "github.com/tallerpro/taller-api/internal/infrastructure/pdf"
	"github.com/tallerpro/taller-api/internal/infrastructure/postgres"
	"github.com/tallerpro/taller-api/internal/infrastructure/ws"
	httpRouter "github.com/tallerpro/taller-api/internal/interfaces/http"
	"github.com/tallerpro/taller-api/pkg/config"
	"github.com/tallerpro/taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	ordenRepo := postgres.NewOrdenRepository(pool)
	notaVentaRepo := postgres.NewNotaVentaRepository(pool)
	notaProveedorRepo := postgres.NewNotaProveedorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := ws.NewHub(log)
	go hub.Run()

	clienteUC := usecase.NewClienteUseCase(clienteRepo, hub)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo, hub)
	cotizacionUC := usecase.NewCotizacionUseCase(txRunner, cotizacionRepo, clienteRepo, hub)
	ordenUC := usecase.NewOrdenUseCase(txRunner, ordenRepo, clienteRepo, hub)
	notaVentaUC := usecase.NewNotaVentaUseCase(txRunner, notaVentaRepo, clienteRepo, hub)
	notaProveedorUC := usecase.NewNotaProveedorUseCase(txRunner, notaProveedorRepo, proveedorRepo, hub)
	pagoUC := usecase.NewPagoUseCase(txRunner, hub)
	conversionUC := usecase.NewConversionUseCase(txRunner, hub)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewNotaPDFGenerator(cfg.App.Name)
	xmlBuilder := cfdi.NewXMLBuilder(cfdi.Emisor{
		RFC:           "XAXX010101000",
		Nombre:        cfg.App.Name,
		RegimenFiscal: "612",
		CodigoPostal:  "00000",
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Canal de eventos para el front de escritorio.
	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", hub.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClienteUC:       clienteUC,
		ProveedorUC:     proveedorUC,
		CotizacionUC:    cotizacionUC,
		OrdenUC:         ordenUC,
		NotaVentaUC:     notaVentaUC,
		NotaProveedorUC: notaProveedorUC,
		PagoUC:          pagoUC,
		ConversionUC:    conversionUC,
		AuthUC:          authUC,
		PDFGenerator:    pdfGenerator,
		XMLBuilder:      xmlBuilder,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
