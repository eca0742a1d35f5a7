package customer

import (
	"errors"
	"fmt"
	"strings"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportIssueRequest struct {
	Message string `json:"message"`
}

type TicketResponse struct {
	ID      uint   `json:"ticket_id"`
	CargoID string `json:"cargo_id"`
	Message string `json:"message"`
}

// -------------------------
// Yardımcı: oturumdaki müşteri
// -------------------------
func customerID(c *fiber.Ctx) (string, error) {
	s := auth.SessionFrom(c)
	if s.Role != auth.RoleCustomer || s.CustomerID == "" {
		return "", fiber.NewError(fiber.StatusForbidden, "Customer information not found")
	}
	return s.CustomerID, nil
}

// statusFilter: ?status=Delivered&status=In%20Transit veya ?status=Delivered,In%20Transit
func statusFilter(c *fiber.Ctx) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("status") {
		for _, s := range strings.Split(string(raw), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// GET /api/customer/dashboard
func DashboardHandler(p *Portal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		d, err := p.Dashboard(c.UserContext(), id)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(d)
	}
}

// GET /api/customer/shipments?status=Delivered
func MyShipmentsHandler(p *Portal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		rows, err := p.MyShipments(c.UserContext(), id, statusFilter(c))
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/customer/incoming
func IncomingHandler(p *Portal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		rows, err := p.Incoming(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/customer/invoices
func InvoicesHandler(p *Portal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		rows, err := p.Invoices(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// POST /api/customer/invoices/:id/pay
func PayInvoiceHandler(p *Portal, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		invoiceID, err := c.ParamsInt("id")
		if err != nil || invoiceID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid invoice ID")
		}

		inv, err := p.Pay(c.UserContext(), id, uint(invoiceID))
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		case errors.Is(err, ErrAlreadyPaid):
			return fiber.NewError(fiber.StatusConflict, "Invoice is already paid")
		case err != nil:
			return err
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Fatura ödendi: %d (%s)", inv.ID, inv.CargoID),
			Before:      fiber.Map{"payment_status": models.PaymentPending},
			After:       fiber.Map{"payment_status": models.PaymentPaid},
		})

		return c.JSON(fiber.Map{
			"message": "Payment Successful! Status updated.",
			"invoice": inv,
		})
	}
}

func ticketResponse(c *fiber.Ctx, db *gorm.DB, t *models.SupportTicket, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Shipment not found")
	case errors.Is(err, ErrEmptyMessage):
		return fiber.NewError(fiber.StatusBadRequest, "Please describe the issue")
	case err != nil:
		return err
	}

	audit.Record(c.UserContext(), db, audit.LogOptions{
		Actor:       auth.SessionFrom(c),
		EntityType:  "support_ticket",
		EntityID:    t.ID,
		Action:      models.AuditActionCreate,
		Description: "Destek kaydı açıldı: " + t.CargoID,
		After:       t,
	})

	return c.Status(fiber.StatusCreated).JSON(TicketResponse{ID: t.ID, CargoID: t.CargoID, Message: t.Message})
}

// POST /api/customer/shipments/:id/issues
func ReportIssueHandler(p *Portal, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		var body ReportIssueRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		t, err := p.ReportIssue(c.UserContext(), id, c.Params("id"), body.Message)
		return ticketResponse(c, db, t, err)
	}
}

// POST /api/customer/incoming/:id/not-home
func NotHomeHandler(p *Portal, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := customerID(c)
		if err != nil {
			return err
		}
		t, err := p.NotHome(c.UserContext(), id, c.Params("id"))
		return ticketResponse(c, db, t, err)
	}
}
