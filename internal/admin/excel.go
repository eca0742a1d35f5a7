package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	exportSheet = "Shipments"
	xlsxMime    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []any{
	"Cargo ID", "Sender", "Receiver", "Origin Branch", "Origin City",
	"Destination Branch", "Destination City", "Service Type", "Weight (kg)",
	"Shipping Cost", "Status", "Progress (%)", "Payment", "Last Updated",
}

// WriteCargoSheet: kargo listesini tek sayfalık XLSX dosyasına yazar
func WriteCargoSheet(cargos []models.Cargo) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	for i, c := range cargos {
		r := toCargoResponse(c)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			r.ID, r.Sender, r.Receiver, r.OriginBranch, r.OriginCity,
			r.DestBranch, r.DestCity, r.ServiceType, r.Weight,
			r.ShippingCost, r.CurrentStatus, r.Progress, string(r.PaymentStatus),
			r.LastUpdated.UTC().Format("02.01.2006 15:04"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// StatusRow: toplu durum güncelleme dosyasındaki bir satır
type StatusRow struct {
	Row     int    `json:"row"` // Excel satır numarası (1 tabanlı)
	CargoID string `json:"cargo_id"`
	Status  string `json:"status"`
	Branch  string `json:"branch,omitempty"`
}

// ParseStatusSheet reads "Cargo ID | Status | Branch" rows from the first
// sheet. A header row is detected and skipped.
func ParseStatusSheet(r io.Reader) ([]StatusRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid("Excel file could not be read")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalid("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, invalid("Sheet could not be read")
	}

	out := make([]StatusRow, 0, len(rows))
	for i, row := range rows {
		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}

		// İlk satır başlık satırı mı?
		if i == 0 && strings.Contains(strings.ToUpper(cell(0)), "CARGO") {
			continue
		}
		if cell(0) == "" && cell(1) == "" {
			continue
		}
		out = append(out, StatusRow{Row: i + 1, CargoID: cell(0), Status: cell(1), Branch: cell(2)})
	}
	if len(out) == 0 {
		return nil, invalid("Excel file is empty")
	}
	return out, nil
}

type ImportFailure struct {
	StatusRow
	Error string `json:"error"`
}

type ImportResult struct {
	Updated  []string        `json:"updated"`
	Failures []ImportFailure `json:"failures"`
}

// ApplyStatusRows runs every row through UpdateCargoStatus. Rows fail
// independently; onUpdate is called after each successful row.
func ApplyStatusRows(ctx context.Context, db *gorm.DB, rows []StatusRow, now time.Time, onUpdate func(before, after models.Cargo)) (*ImportResult, error) {
	var branches []models.Branch
	if err := db.WithContext(ctx).Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("şubeler okunamadı: %w", err)
	}
	branchByName := func(name string) (uint, bool) {
		for _, b := range branches {
			if strings.EqualFold(b.Name, name) {
				return b.ID, true
			}
		}
		return 0, false
	}

	res := &ImportResult{Updated: []string{}, Failures: []ImportFailure{}}
	for _, row := range rows {
		req := UpdateStatusRequest{Status: row.Status}
		if row.Branch != "" {
			id, ok := branchByName(row.Branch)
			if !ok {
				res.Failures = append(res.Failures, ImportFailure{StatusRow: row, Error: "Branch not found"})
				continue
			}
			req.BranchID = &id
		}

		before, after, err := UpdateCargoStatus(ctx, db, row.CargoID, req, now)
		if err != nil {
			var ve *ValidationError
			switch {
			case errors.Is(err, ErrNotFound):
				res.Failures = append(res.Failures, ImportFailure{StatusRow: row, Error: "Cargo not found"})
			case errors.As(err, &ve):
				res.Failures = append(res.Failures, ImportFailure{StatusRow: row, Error: ve.Msg})
			default:
				return nil, err
			}
			continue
		}
		res.Updated = append(res.Updated, after.ID)
		if onUpdate != nil {
			onUpdate(before, after)
		}
	}
	return res, nil
}

// GET /api/admin/cargos/export
func ExportCargosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cargos, err := ListCargos(c.UserContext(), db)
		if err != nil {
			return err
		}
		buf, err := WriteCargoSheet(cargos)
		if err != nil {
			return fmt.Errorf("excel dosyası oluşturulamadı: %w", err)
		}

		c.Set(fiber.HeaderContentType, xlsxMime)
		c.Attachment(fmt.Sprintf("shipments-%s.xlsx", time.Now().UTC().Format("20060102")))
		return c.Send(buf.Bytes())
	}
}

// POST /api/admin/cargos/status-import  (multipart, "file" alanı)
func ImportStatusesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File could not be uploaded")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be uploaded")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("dosya açılamadı: %w", err)
		}
		defer file.Close()

		rows, err := ParseStatusSheet(file)
		if err != nil {
			return httpError(err, "")
		}

		actor := auth.SessionFrom(c)
		res, err := ApplyStatusRows(c.UserContext(), db, rows, time.Now().UTC(), func(before, after models.Cargo) {
			audit.Record(c.UserContext(), db, audit.LogOptions{
				Actor:       actor,
				EntityType:  "cargo",
				EntityID:    after.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Toplu durum güncelleme: %s -> %s", before.CurrentStatus, after.CurrentStatus),
				Before:      before,
				After:       after,
			})
		})
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
