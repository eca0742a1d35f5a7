package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type SummaryRow struct {
	CargoID       string    `db:"cargo_id"`
	CurrentStatus string    `db:"current_status"`
	PaymentStatus string    `db:"payment_status"`
	Weight        float64   `db:"weight"`
	LastUpdated   time.Time `db:"last_updated"`
	SenderFirst   string    `db:"sender_first"`
	SenderLast    string    `db:"sender_last"`
	ReceiverFirst string    `db:"receiver_first"`
	ReceiverLast  string    `db:"receiver_last"`
	OriginBranch  string    `db:"origin_branch"`
	OriginCity    string    `db:"origin_city"`
	DestBranch    string    `db:"dest_branch"`
	DestCity      string    `db:"dest_city"`
	ServiceType   string    `db:"service_type"`
}

type MovementRow struct {
	ID                uint      `db:"id"`
	LogTimestamp      time.Time `db:"log_timestamp"`
	StatusDescription string    `db:"status_description"`
	BranchName        string    `db:"branch_name"`
	BranchCity        string    `db:"branch_city"`
}

// Repository reads the joined shipment data. Both methods are read-only.
type Repository interface {
	Summary(ctx context.Context, cargoID string) (SummaryRow, error)
	Movements(ctx context.Context, cargoID string) ([]MovementRow, error)
}

const summaryQuery = `
	SELECT c.id AS cargo_id, c.current_status, c.payment_status, c.weight, c.last_updated,
	       s.first_name AS sender_first, s.last_name AS sender_last,
	       r.first_name AS receiver_first, r.last_name AS receiver_last,
	       ob.name AS origin_branch, ob.city AS origin_city,
	       dst.name AS dest_branch, dst.city AS dest_city,
	       st.name AS service_type
	FROM cargos c
	JOIN customers s ON c.sender_cust_id = s.id
	JOIN customers r ON c.receiver_cust_id = r.id
	JOIN branches ob ON c.origin_branch_id = ob.id
	JOIN branches dst ON c.dest_branch_id = dst.id
	JOIN service_types st ON c.service_type_id = st.id
	WHERE c.id = ?`

const movementsQuery = `
	SELECT t.id, t.log_timestamp, cst.description AS status_description,
	       b.name AS branch_name, b.city AS branch_city
	FROM tracking_logs t
	JOIN cargo_status_types cst ON t.status_id = cst.id
	JOIN branches b ON t.branch_id = b.id
	WHERE t.cargo_id = ?
	ORDER BY t.log_timestamp DESC, t.id DESC`

// SQLRepository runs the hand-written joins through sqlx.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Summary(ctx context.Context, cargoID string) (SummaryRow, error) {
	var row SummaryRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(summaryQuery), cargoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SummaryRow{}, ErrNotFound
		}
		return SummaryRow{}, fmt.Errorf("kargo özeti okunamadı: %w", err)
	}
	return row, nil
}

func (r *SQLRepository) Movements(ctx context.Context, cargoID string) ([]MovementRow, error) {
	var rows []MovementRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(movementsQuery), cargoID); err != nil {
		return nil, fmt.Errorf("hareket geçmişi okunamadı: %w", err)
	}
	return rows, nil
}
