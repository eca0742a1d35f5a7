package customer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thunder-cargo/internal/models"
	"thunder-cargo/internal/status"
	"thunder-cargo/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPortal(t *testing.T, delay time.Duration) (*Portal, *gorm.DB) {
	t.Helper()
	db, rdb := testutil.NewDB(t)
	return NewPortal(db, rdb, delay), db
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

func invoiceFor(t *testing.T, db *gorm.DB, cargoID string) uint {
	t.Helper()
	var inv models.Invoice
	require.NoError(t, db.First(&inv, "cargo_id = ?", cargoID).Error)
	return inv.ID
}

func TestDashboard(t *testing.T) {
	p, _ := newPortal(t, 0)

	d, err := p.Dashboard(context.Background(), "CU001")
	require.NoError(t, err)
	assert.Equal(t, "Ahmet Yilmaz", d.FullName)
	assert.EqualValues(t, 2, d.Outgoing)
	assert.EqualValues(t, 3, d.Incoming)
	assert.InDelta(t, 216.25, d.TotalSpend, 0.001)

	require.Len(t, d.Recent, RecentLimit)
	assert.Equal(t, []string{"CG004", "CG003", "CG002", "CG001", "CG005"},
		ids(d.Recent, func(a Activity) string { return a.CargoID }))
	assert.Equal(t, DirectionIncoming, d.Recent[0].Direction)
	assert.Equal(t, DirectionOutgoing, d.Recent[1].Direction)
	assert.Equal(t, status.Delivered, d.Recent[1].Stage)
	assert.Equal(t, 100, d.Recent[1].Progress)

	_, err = p.Dashboard(context.Background(), "CU999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMyShipments(t *testing.T) {
	p, _ := newPortal(t, 0)
	ctx := context.Background()

	all, err := p.MyShipments(ctx, "CU001", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"CG003", "CG001"}, ids(all, func(s Shipment) string { return s.CargoID }))
	assert.Equal(t, "Mehmet", all[0].Counterpart)
	assert.Equal(t, "Izmir", all[0].City)
	assert.Equal(t, "Standard", all[0].ServiceType)
	assert.Equal(t, status.InTransit, all[1].Stage)

	delivered, err := p.MyShipments(ctx, "CU001", []string{"Delivered"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CG003"}, ids(delivered, func(s Shipment) string { return s.CargoID }))

	both, err := p.MyShipments(ctx, "CU001", []string{"Delivered", " In Transit ", ""})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := p.MyShipments(ctx, "CU001", []string{"Returned"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIncomingSkipsClosed(t *testing.T) {
	p, _ := newPortal(t, 0)

	rows, err := p.Incoming(context.Background(), "CU001")
	require.NoError(t, err)
	assert.Equal(t, []string{"CG004", "CG002"}, ids(rows, func(s Shipment) string { return s.CargoID }))
	assert.Equal(t, "Mehmet", rows[0].Counterpart)
	assert.Equal(t, status.Pending, rows[0].Stage)
}

func TestInvoices(t *testing.T) {
	p, _ := newPortal(t, 0)

	rows, err := p.Invoices(context.Background(), "CU001")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CG003", rows[0].CargoID)
	assert.Equal(t, models.PaymentPaid, rows[0].PaymentStatus)
	assert.Equal(t, "CG001", rows[1].CargoID)
	assert.Equal(t, models.PaymentPending, rows[1].PaymentStatus)
}

func TestPay(t *testing.T) {
	p, db := newPortal(t, time.Millisecond)
	ctx := context.Background()

	inv, err := p.Pay(ctx, "CU001", invoiceFor(t, db, "CG001"))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, inv.PaymentStatus)

	var cargo models.Cargo
	require.NoError(t, db.First(&cargo, "id = ?", "CG001").Error)
	assert.Equal(t, models.PaymentPaid, cargo.PaymentStatus)

	_, err = p.Pay(ctx, "CU001", invoiceFor(t, db, "CG001"))
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = p.Pay(ctx, "CU001", invoiceFor(t, db, "CG003"))
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// başka müşterinin faturası
	_, err = p.Pay(ctx, "CU001", invoiceFor(t, db, "CG004"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPayHonoursCancellation(t *testing.T) {
	p, db := newPortal(t, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Pay(ctx, "CU003", invoiceFor(t, db, "CG004"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var cargo models.Cargo
	require.NoError(t, db.First(&cargo, "id = ?", "CG004").Error)
	assert.Equal(t, models.PaymentPending, cargo.PaymentStatus)
}

func TestTickets(t *testing.T) {
	p, db := newPortal(t, 0)
	ctx := context.Background()

	tk, err := p.ReportIssue(ctx, "CU001", "cg001", "  Package looks damaged ")
	require.NoError(t, err)
	assert.Equal(t, "CG001", tk.CargoID)
	assert.Equal(t, "Package looks damaged", tk.Message)

	// CG002 müşteriye gelen kargo, gönderdiği değil
	_, err = p.ReportIssue(ctx, "CU001", "CG002", "late")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.ReportIssue(ctx, "CU001", "CG001", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	note, err := p.NotHome(ctx, "CU001", "CG002")
	require.NoError(t, err)
	assert.Equal(t, NotHomeMessage, note.Message)

	var n int64
	require.NoError(t, db.Model(&models.SupportTicket{}).Where("cust_id = ?", "CU001").Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestHandlersRequireCustomerSession(t *testing.T) {
	p, _ := newPortal(t, 0)

	app := fiber.New()
	app.Get("/dashboard", DashboardHandler(p))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
