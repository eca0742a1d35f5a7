// Package customer serves the signed-in customer's own shipments and invoices.
package customer

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"thunder-cargo/internal/models"
	"thunder-cargo/internal/status"
	"thunder-cargo/internal/tracking"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// RecentLimit: panelde gösterilen son hareket sayısı
const RecentLimit = 5

const (
	DirectionOutgoing = "Outgoing"
	DirectionIncoming = "Incoming"

	NotHomeMessage = "Customer is not home: leave at neighbor or branch"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrAlreadyPaid  = errors.New("invoice is already paid")
	ErrEmptyMessage = errors.New("message is required")
)

// closedStatuses: gelen kargolar listesinde gösterilmeyen etiketler
var closedStatuses = []string{"Delivered", "Returned"}

type Activity struct {
	CargoID       string       `db:"id" json:"cargo_id"`
	CurrentStatus string       `db:"current_status" json:"current_status"`
	LastUpdated   time.Time    `db:"last_updated" json:"last_updated"`
	Direction     string       `db:"-" json:"type"`
	Stage         status.Stage `db:"-" json:"stage"`
	Progress      int          `db:"-" json:"progress"`
}

type Dashboard struct {
	CustomerID string     `json:"customer_id"`
	FullName   string     `json:"full_name"`
	Outgoing   int64      `json:"outgoing"`
	Incoming   int64      `json:"incoming"`
	TotalSpend float64    `json:"total_spend"`
	Recent     []Activity `json:"recent"`
}

type Shipment struct {
	CargoID       string       `db:"id" json:"cargo_id"`
	Counterpart   string       `db:"counterpart" json:"counterpart"` // alıcı veya gönderici adı
	City          string       `db:"city" json:"city"`
	CurrentStatus string       `db:"current_status" json:"current_status"`
	ShippingCost  float64      `db:"shipping_cost" json:"shipping_cost"`
	ServiceType   string       `db:"service_type" json:"service_type"`
	LastUpdated   time.Time    `db:"last_updated" json:"last_updated"`
	Stage         status.Stage `db:"-" json:"stage"`
	Progress      int          `db:"-" json:"progress"`
}

type Invoice struct {
	ID            uint                 `db:"id" json:"invoice_id"`
	CargoID       string               `db:"cargo_id" json:"cargo_id"`
	InvoiceDate   time.Time            `db:"invoice_date" json:"invoice_date"`
	TotalAmount   float64              `db:"total_amount" json:"total_amount"`
	PaymentStatus models.PaymentStatus `db:"payment_status" json:"payment_status"`
}

type Portal struct {
	db    *gorm.DB
	rdb   *sqlx.DB
	delay time.Duration
}

// NewPortal: delay ödeme işleminin simüle edilen süresidir.
func NewPortal(db *gorm.DB, rdb *sqlx.DB, delay time.Duration) *Portal {
	return &Portal{db: db, rdb: rdb, delay: delay}
}

func classify[T any](rows []T, label func(*T) string, set func(*T, status.Result)) {
	for i := range rows {
		set(&rows[i], status.Classify(label(&rows[i])))
	}
}

func (p *Portal) Dashboard(ctx context.Context, custID string) (*Dashboard, error) {
	var name struct {
		First string `db:"first_name"`
		Last  string `db:"last_name"`
	}
	err := p.rdb.GetContext(ctx, &name, p.rdb.Rebind(`SELECT first_name, last_name FROM customers WHERE id = ?`), custID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("müşteri okunamadı: %w", err)
	}

	d := &Dashboard{CustomerID: custID, FullName: strings.TrimSpace(name.First + " " + name.Last)}

	counts := []struct {
		dst   any
		query string
	}{
		{&d.Outgoing, `SELECT COUNT(*) FROM cargos WHERE sender_cust_id = ?`},
		{&d.Incoming, `SELECT COUNT(*) FROM cargos WHERE receiver_cust_id = ?`},
		{&d.TotalSpend, `SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE cust_id = ?`},
	}
	for _, q := range counts {
		if err := p.rdb.GetContext(ctx, q.dst, p.rdb.Rebind(q.query), custID); err != nil {
			return nil, fmt.Errorf("panel özeti alınamadı: %w", err)
		}
	}

	recent, err := p.recent(ctx, custID)
	if err != nil {
		return nil, err
	}
	d.Recent = recent
	return d, nil
}

// recent merges the newest outgoing and incoming cargos, newest first.
func (p *Portal) recent(ctx context.Context, custID string) ([]Activity, error) {
	var merged []Activity
	for _, side := range []struct {
		column    string
		direction string
	}{
		{"sender_cust_id", DirectionOutgoing},
		{"receiver_cust_id", DirectionIncoming},
	} {
		var rows []Activity
		q := fmt.Sprintf(`
			SELECT id, current_status, last_updated
			FROM cargos
			WHERE %s = ?
			ORDER BY last_updated DESC, id ASC
			LIMIT %d`, side.column, RecentLimit)
		if err := p.rdb.SelectContext(ctx, &rows, p.rdb.Rebind(q), custID); err != nil {
			return nil, fmt.Errorf("son hareketler alınamadı: %w", err)
		}
		for i := range rows {
			rows[i].Direction = side.direction
		}
		merged = append(merged, rows...)
	}

	slices.SortStableFunc(merged, func(a, b Activity) int {
		if c := b.LastUpdated.Compare(a.LastUpdated); c != 0 {
			return c
		}
		return cmp.Compare(a.CargoID, b.CargoID)
	})
	if len(merged) > RecentLimit {
		merged = merged[:RecentLimit]
	}
	classify(merged, func(a *Activity) string { return a.CurrentStatus }, func(a *Activity, r status.Result) {
		a.Stage, a.Progress = r.Stage, r.Progress
	})
	return merged, nil
}

// MyShipments lists cargos the customer sent, optionally narrowed to the given status labels.
func (p *Portal) MyShipments(ctx context.Context, custID string, statuses []string) ([]Shipment, error) {
	q := `
		SELECT c.id,
			   r.first_name AS counterpart,
			   r.city,
			   c.current_status,
			   c.shipping_cost,
			   st.name AS service_type,
			   c.last_updated
		FROM cargos c
		JOIN customers r ON c.receiver_cust_id = r.id
		JOIN service_types st ON c.service_type_id = st.id
		WHERE c.sender_cust_id = ?`
	args := []any{custID}

	var filter []string
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			filter = append(filter, s)
		}
	}
	if len(filter) > 0 {
		q += ` AND c.current_status IN (?)`
		args = append(args, filter)
	}
	q += ` ORDER BY c.last_updated DESC, c.id ASC`

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, fmt.Errorf("sorgu hazırlanamadı: %w", err)
	}

	rows := []Shipment{}
	if err := p.rdb.SelectContext(ctx, &rows, p.rdb.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("gönderiler alınamadı: %w", err)
	}
	classifyShipments(rows)
	return rows, nil
}

// Incoming lists cargos addressed to the customer that are not closed yet.
func (p *Portal) Incoming(ctx context.Context, custID string) ([]Shipment, error) {
	q, args, err := sqlx.In(`
		SELECT c.id,
			   s.first_name AS counterpart,
			   s.city,
			   c.current_status,
			   c.shipping_cost,
			   st.name AS service_type,
			   c.last_updated
		FROM cargos c
		JOIN customers s ON c.sender_cust_id = s.id
		JOIN service_types st ON c.service_type_id = st.id
		WHERE c.receiver_cust_id = ? AND c.current_status NOT IN (?)
		ORDER BY c.last_updated DESC, c.id ASC`, custID, closedStatuses)
	if err != nil {
		return nil, fmt.Errorf("sorgu hazırlanamadı: %w", err)
	}

	rows := []Shipment{}
	if err := p.rdb.SelectContext(ctx, &rows, p.rdb.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("gelen kargolar alınamadı: %w", err)
	}
	classifyShipments(rows)
	return rows, nil
}

func classifyShipments(rows []Shipment) {
	classify(rows, func(s *Shipment) string { return s.CurrentStatus }, func(s *Shipment, r status.Result) {
		s.Stage, s.Progress = r.Stage, r.Progress
	})
}

func (p *Portal) Invoices(ctx context.Context, custID string) ([]Invoice, error) {
	rows := []Invoice{}
	err := p.rdb.SelectContext(ctx, &rows, p.rdb.Rebind(`
		SELECT i.id, i.cargo_id, i.invoice_date, i.total_amount, c.payment_status
		FROM invoices i
		JOIN cargos c ON i.cargo_id = c.id
		WHERE i.cust_id = ?
		ORDER BY i.invoice_date DESC, i.id DESC`), custID)
	if err != nil {
		return nil, fmt.Errorf("faturalar alınamadı: %w", err)
	}
	return rows, nil
}

// Pay simulates online payment: waits the processing delay (unless ctx ends
// first) and marks the invoice's cargo as Paid.
func (p *Portal) Pay(ctx context.Context, custID string, invoiceID uint) (*Invoice, error) {
	var inv models.Invoice
	err := p.db.WithContext(ctx).First(&inv, "id = ? AND cust_id = ?", invoiceID, custID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fatura okunamadı: %w", err)
	}

	var cargo models.Cargo
	if err := p.db.WithContext(ctx).First(&cargo, "id = ?", inv.CargoID).Error; err != nil {
		return nil, fmt.Errorf("kargo okunamadı: %w", err)
	}
	if cargo.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res := p.db.WithContext(ctx).Model(&models.Cargo{}).
		Where("id = ? AND payment_status = ?", cargo.ID, models.PaymentPending).
		Update("payment_status", models.PaymentPaid)
	if res.Error != nil {
		return nil, fmt.Errorf("ödeme kaydedilemedi: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyPaid
	}

	return &Invoice{
		ID:            inv.ID,
		CargoID:       inv.CargoID,
		InvoiceDate:   inv.InvoiceDate,
		TotalAmount:   inv.TotalAmount,
		PaymentStatus: models.PaymentPaid,
	}, nil
}

// ReportIssue opens a support ticket for a cargo the customer sent.
func (p *Portal) ReportIssue(ctx context.Context, custID, cargoID, message string) (*models.SupportTicket, error) {
	return p.ticket(ctx, custID, cargoID, message, "sender_cust_id")
}

// NotHome leaves a delivery note for an incoming cargo.
func (p *Portal) NotHome(ctx context.Context, custID, cargoID string) (*models.SupportTicket, error) {
	return p.ticket(ctx, custID, cargoID, NotHomeMessage, "receiver_cust_id")
}

func (p *Portal) ticket(ctx context.Context, custID, cargoID, message, ownerColumn string) (*models.SupportTicket, error) {
	id, err := tracking.NormalizeID(cargoID)
	if err != nil {
		return nil, ErrNotFound
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	var n int64
	if err := p.db.WithContext(ctx).Model(&models.Cargo{}).
		Where("id = ? AND "+ownerColumn+" = ?", id, custID).
		Count(&n).Error; err != nil {
		return nil, fmt.Errorf("kargo okunamadı: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	t := models.SupportTicket{CargoID: id, CustID: custID, Message: message}
	if err := p.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("destek kaydı açılamadı: %w", err)
	}
	return &t, nil
}
