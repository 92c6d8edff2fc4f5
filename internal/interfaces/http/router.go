package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC       *usecase.ClienteUseCase
	ProveedorUC     *usecase.ProveedorUseCase
	CotizacionUC    *usecase.CotizacionUseCase
	OrdenUC         *usecase.OrdenUseCase
	NotaVentaUC     *usecase.NotaVentaUseCase
	NotaProveedorUC *usecase.NotaProveedorUseCase
	PagoUC          *usecase.PagoUseCase
	ConversionUC    *usecase.ConversionUseCase
	AuthUC          *auth.AuthUseCase
	PDFGenerator    NotaPDFGenerator
	XMLBuilder      NotaXMLBuilder
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.Get)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Disable)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.Get)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", proveedorHandler.Disable)

	// Cotizaciones
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC, deps.ConversionUC)
	cotizaciones.Post("/", cotizacionHandler.Create)
	cotizaciones.Get("/", cotizacionHandler.List)
	cotizaciones.Get("/:id", cotizacionHandler.Get)
	cotizaciones.Put("/:id", cotizacionHandler.Update)
	cotizaciones.Post("/:id/cancelar", cotizacionHandler.Cancelar)
	cotizaciones.Post("/:id/convertir", cotizacionHandler.Convertir)

	// Órdenes de trabajo
	ordenes := protected.Group("/ordenes")
	ordenHandler := NewOrdenHandler(deps.OrdenUC, deps.ConversionUC)
	ordenes.Post("/", ordenHandler.Create)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Get("/:id", ordenHandler.Get)
	ordenes.Put("/:id", ordenHandler.Update)
	ordenes.Put("/:id/estado", ordenHandler.CambiarEstado)
	ordenes.Post("/:id/cancelar", ordenHandler.Cancelar)
	ordenes.Post("/:id/convertir", ordenHandler.Convertir)

	// Notas de venta
	notasVenta := protected.Group("/notas-venta")
	notaVentaHandler := NewNotaVentaHandler(deps.NotaVentaUC, deps.PagoUC, deps.PDFGenerator, deps.XMLBuilder)
	notasVenta.Post("/", notaVentaHandler.Create)
	notasVenta.Get("/", notaVentaHandler.List)
	// Ruta fija antes que /:id para que Fiber no la capture como parámetro.
	notasVenta.Delete("/pagos/:pagoId", notaVentaHandler.ReversePago)
	notasVenta.Get("/:id", notaVentaHandler.Get)
	notasVenta.Put("/:id", notaVentaHandler.Update)
	notasVenta.Post("/:id/cancelar", notaVentaHandler.Cancelar)
	notasVenta.Post("/:id/pagos", notaVentaHandler.ApplyPago)
	notasVenta.Get("/:id/pdf", notaVentaHandler.PDF)
	notasVenta.Get("/:id/xml", notaVentaHandler.XML)

	// Notas de proveedor
	notasProveedor := protected.Group("/notas-proveedor")
	notaProveedorHandler := NewNotaProveedorHandler(deps.NotaProveedorUC, deps.PagoUC)
	notasProveedor.Post("/", notaProveedorHandler.Create)
	notasProveedor.Get("/", notaProveedorHandler.List)
	notasProveedor.Delete("/pagos/:pagoId", notaProveedorHandler.ReversePago)
	notasProveedor.Get("/:id", notaProveedorHandler.Get)
	notasProveedor.Put("/:id", notaProveedorHandler.Update)
	notasProveedor.Post("/:id/cancelar", notaProveedorHandler.Cancelar)
	notasProveedor.Post("/:id/pagos", notaProveedorHandler.ApplyPago)
}
