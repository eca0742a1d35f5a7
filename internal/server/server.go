// Package server wires every handler into one Fiber application.
package server

import (
	"errors"
	"fmt"
	"strings"

	"thunder-cargo/internal/admin"
	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/branch"
	"thunder-cargo/internal/captcha"
	"thunder-cargo/internal/config"
	"thunder-cargo/internal/customer"
	"thunder-cargo/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	ReadDB   *sqlx.DB
	Verifier auth.Verifier
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if errors.As(err, &e) {
			return c.Status(e.Code).JSON(fiber.Map{
				"error": e.Message,
			})
		}
		log.Error("beklenmeyen hata",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unexpected server error",
		})
	}
}

func New(d Deps) (*fiber.App, error) {
	cfg := d.Config

	cargoIDs, err := admin.NewCargoIDGenerator(d.DB)
	if err != nil {
		return nil, fmt.Errorf("kargo id üreteci kurulamadı: %w", err)
	}
	customerIDs, err := admin.NewCustomerIDGenerator(d.DB)
	if err != nil {
		return nil, fmt.Errorf("müşteri id üreteci kurulamadı: %w", err)
	}

	gate := captcha.NewGate(captcha.NewGormStore(d.DB), cfg.CaptchaTTL)
	tracker := tracking.NewService(tracking.NewSQLRepository(d.ReadDB))
	locator := branch.NewLocator(d.DB)
	portal := customer.NewPortal(d.DB, d.ReadDB, cfg.PaymentDelay)

	app := fiber.New(fiber.Config{
		AppName:      "Thunder Cargo",
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(requestLogger(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOriginList(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")
	api.Use(auth.SessionMiddleware(cfg.JWTSecret))

	// Herkese açık (misafir)
	public := api.Group("/public")
	public.Get("/about", AboutHandler())
	public.Get("/captcha", captcha.IssueHandler(gate))
	public.Post("/track", tracking.PublicTrackHandler(gate, tracker))
	public.Get("/branches/cities", branch.CitiesHandler(locator))
	public.Get("/branches/districts", branch.DistrictsHandler(locator))
	public.Get("/branches", branch.FindBranchesHandler(locator))

	// Auth
	api.Post("/auth/login", auth.LoginHandler(d.Verifier, cfg.JWTSecret))
	api.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))

	adminRoutes.Get("/dashboard", admin.DashboardHandler(d.DB))
	adminRoutes.Get("/options", admin.OptionsHandler(d.DB))
	adminRoutes.Get("/tracking/:id", tracking.InternalTrackHandler(tracker))

	// Kargo yönetimi
	adminRoutes.Get("/cargos", admin.ListCargosHandler(d.DB))
	adminRoutes.Post("/cargos", admin.CreateCargoHandler(d.DB, cargoIDs))
	adminRoutes.Put("/cargos/:id/status", admin.UpdateCargoStatusHandler(d.DB))
	adminRoutes.Get("/cargos/export", admin.ExportCargosHandler(d.DB))
	adminRoutes.Post("/cargos/status-import", admin.ImportStatusesHandler(d.DB))

	// Müşteri kaydı
	adminRoutes.Get("/customers", admin.ListCustomersHandler(d.DB))
	adminRoutes.Post("/customers", admin.CreateCustomerHandler(d.DB, customerIDs))

	// Personel yönetimi
	adminRoutes.Get("/employees", admin.ListEmployeesHandler(d.DB))
	adminRoutes.Post("/employees", admin.CreateEmployeeHandler(d.DB))
	adminRoutes.Put("/employees/:id", admin.UpdateEmployeeHandler(d.DB))
	adminRoutes.Delete("/employees/:id", admin.DeleteEmployeeHandler(d.DB))

	// Şube yönetimi
	adminRoutes.Get("/branches", branch.ListBranchesHandler(d.DB))
	adminRoutes.Post("/branches", branch.CreateBranchHandler(d.DB))
	adminRoutes.Get("/branches/:id", branch.GetBranchHandler(d.DB))
	adminRoutes.Put("/branches/:id", branch.UpdateBranchHandler(d.DB))

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(d.DB))

	// Müşteri paneli
	customerRoutes := api.Group("/customer", auth.RequireRole(auth.RoleCustomer))

	customerRoutes.Get("/dashboard", customer.DashboardHandler(portal))
	customerRoutes.Get("/shipments", customer.MyShipmentsHandler(portal))
	customerRoutes.Post("/shipments/:id/issues", customer.ReportIssueHandler(portal, d.DB))
	customerRoutes.Get("/incoming", customer.IncomingHandler(portal))
	customerRoutes.Post("/incoming/:id/not-home", customer.NotHomeHandler(portal, d.DB))
	customerRoutes.Get("/invoices", customer.InvoicesHandler(portal))
	customerRoutes.Post("/invoices/:id/pay", customer.PayInvoiceHandler(portal, d.DB))

	return app, nil
}
