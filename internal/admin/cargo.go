package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/idgen"
	"thunder-cargo/internal/models"
	"thunder-cargo/internal/status"
	"thunder-cargo/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// InitialStatus: yeni kayıtlı kargonun görünen durumu
	InitialStatus = "Preparing"
	// InitialLogStatus: ilk hareket kaydının açıklaması
	InitialLogStatus = "Shipment Accepted"
)

type CargoResponse struct {
	ID            string               `json:"cargo_id"`
	Sender        string               `json:"sender"`
	Receiver      string               `json:"receiver"`
	OriginBranch  string               `json:"origin_branch"`
	OriginCity    string               `json:"origin_city"`
	DestBranch    string               `json:"dest_branch"`
	DestCity      string               `json:"dest_city"`
	ServiceType   string               `json:"service_type"`
	Weight        float64              `json:"weight"`
	ShippingCost  float64              `json:"shipping_cost"`
	CurrentStatus string               `json:"current_status"`
	Stage         status.Stage         `json:"stage"`
	Progress      int                  `json:"progress"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	LastUpdated   time.Time            `json:"last_updated"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status"`
	BranchID *uint  `json:"branch_id"` // verilirse hareket kaydı da düşülür
}

type CreateCargoRequest struct {
	SenderCustID   string  `json:"sender_cust_id"`
	ReceiverCustID string  `json:"receiver_cust_id"`
	OriginBranchID uint    `json:"origin_branch_id"`
	DestBranchID   uint    `json:"dest_branch_id"`
	ServiceTypeID  uint    `json:"service_type_id"`
	Weight         float64 `json:"weight"`
	ShippingCost   float64 `json:"shipping_cost"`
}

func toCargoResponse(c models.Cargo) CargoResponse {
	r := status.Classify(c.CurrentStatus)
	return CargoResponse{
		ID:            c.ID,
		Sender:        c.Sender.FullName(),
		Receiver:      c.Receiver.FullName(),
		OriginBranch:  c.OriginBranch.Name,
		OriginCity:    c.OriginBranch.City,
		DestBranch:    c.DestBranch.Name,
		DestCity:      c.DestBranch.City,
		ServiceType:   c.ServiceType.Name,
		Weight:        c.Weight,
		ShippingCost:  c.ShippingCost,
		CurrentStatus: c.CurrentStatus,
		Stage:         r.Stage,
		Progress:      r.Progress,
		PaymentStatus: c.PaymentStatus,
		LastUpdated:   c.LastUpdated,
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sender").
		Preload("Receiver").
		Preload("OriginBranch").
		Preload("DestBranch").
		Preload("ServiceType")
}

// NewCargoIDGenerator: cargos tablosuna karşı çakışma kontrollü 5 haneli id
func NewCargoIDGenerator(db *gorm.DB) (*idgen.Generator, error) {
	return idgen.New(existsIn(db, &models.Cargo{}))
}

func existsIn(db *gorm.DB, model any) idgen.ExistsFunc {
	return func(ctx context.Context, id string) (bool, error) {
		var n int64
		if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// ----------------------------------------
// SERVİS FONKSİYONLARI
// ----------------------------------------

func ListCargos(ctx context.Context, db *gorm.DB) ([]models.Cargo, error) {
	var cargos []models.Cargo
	err := withRelations(db.WithContext(ctx)).
		Order("last_updated DESC").
		Order("id ASC").
		Find(&cargos).Error
	if err != nil {
		return nil, fmt.Errorf("kargolar listelenemedi: %w", err)
	}
	return cargos, nil
}

// UpdateCargoStatus sets the display status. With a branch it also appends a
// tracking log entry in the same transaction.
func UpdateCargoStatus(ctx context.Context, db *gorm.DB, cargoID string, req UpdateStatusRequest, now time.Time) (before, after models.Cargo, err error) {
	id, err := tracking.NormalizeID(cargoID)
	if err != nil {
		return before, after, invalid("Cargo ID must be 5 letters or digits")
	}
	label := strings.TrimSpace(req.Status)
	if label == "" {
		return before, after, invalid("Status is required")
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cargo models.Cargo
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cargo, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		before = cargo

		if req.BranchID != nil {
			var branch models.Branch
			if err := tx.First(&branch, "id = ?", *req.BranchID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalid("Branch not found")
				}
				return err
			}

			st := models.CargoStatusType{Description: label}
			if err := tx.Where("description = ?", label).FirstOrCreate(&st).Error; err != nil {
				return err
			}
			entry := models.TrackingLog{
				CargoID:      cargo.ID,
				StatusID:     st.ID,
				BranchID:     branch.ID,
				LogTimestamp: now,
			}
			if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
				return err
			}
		}

		cargo.CurrentStatus = label
		cargo.LastUpdated = now
		if err := tx.Model(&models.Cargo{}).Where("id = ?", cargo.ID).Updates(map[string]any{
			"current_status": cargo.CurrentStatus,
			"last_updated":   cargo.LastUpdated,
		}).Error; err != nil {
			return err
		}
		after = cargo
		return nil
	})
	return before, after, err
}

// RegisterCargo creates the cargo, its invoice for the sender and the first
// tracking log entry at the origin branch.
func RegisterCargo(ctx context.Context, db *gorm.DB, gen *idgen.Generator, req CreateCargoRequest, now time.Time) (*models.Cargo, error) {
	req.SenderCustID = strings.ToUpper(strings.TrimSpace(req.SenderCustID))
	req.ReceiverCustID = strings.ToUpper(strings.TrimSpace(req.ReceiverCustID))

	switch {
	case req.SenderCustID == "" || req.ReceiverCustID == "":
		return nil, invalid("Sender and receiver are required")
	case req.SenderCustID == req.ReceiverCustID:
		return nil, invalid("Sender and receiver must be different customers")
	case req.Weight <= 0:
		return nil, invalid("Weight must be greater than zero")
	case req.ShippingCost < 0:
		return nil, invalid("Shipping cost cannot be negative")
	}

	// Id işlem dışında üretilir; çakışmada son söz birincil anahtarda
	id, err := gen.Next(ctx)
	if err != nil {
		return nil, err
	}

	var cargo models.Cargo
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checks := []struct {
			model any
			id    any
			msg   string
		}{
			{&models.Customer{}, req.SenderCustID, "Sender not found"},
			{&models.Customer{}, req.ReceiverCustID, "Receiver not found"},
			{&models.Branch{}, req.OriginBranchID, "Origin branch not found"},
			{&models.Branch{}, req.DestBranchID, "Destination branch not found"},
			{&models.ServiceType{}, req.ServiceTypeID, "Service type not found"},
		}
		for _, ch := range checks {
			var n int64
			if err := tx.Model(ch.model).Where("id = ?", ch.id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return invalid(ch.msg)
			}
		}

		cargo = models.Cargo{
			ID:             id,
			SenderCustID:   req.SenderCustID,
			ReceiverCustID: req.ReceiverCustID,
			OriginBranchID: req.OriginBranchID,
			DestBranchID:   req.DestBranchID,
			ServiceTypeID:  req.ServiceTypeID,
			Weight:         req.Weight,
			ShippingCost:   req.ShippingCost,
			CurrentStatus:  InitialStatus,
			PaymentStatus:  models.PaymentPending,
			LastUpdated:    now,
		}
		if err := tx.Omit(clause.Associations).Create(&cargo).Error; err != nil {
			return err
		}

		invoice := models.Invoice{
			CargoID:     cargo.ID,
			CustID:      cargo.SenderCustID,
			TotalAmount: cargo.ShippingCost,
			InvoiceDate: now,
		}
		if err := tx.Omit(clause.Associations).Create(&invoice).Error; err != nil {
			return err
		}

		st := models.CargoStatusType{Description: InitialLogStatus}
		if err := tx.Where("description = ?", InitialLogStatus).FirstOrCreate(&st).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&models.TrackingLog{
			CargoID:      cargo.ID,
			StatusID:     st.ID,
			BranchID:     cargo.OriginBranchID,
			LogTimestamp: now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &cargo, nil
}

// ----------------------------------------
// HANDLER'LAR
// ----------------------------------------

// GET /api/admin/cargos
func ListCargosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cargos, err := ListCargos(c.UserContext(), db)
		if err != nil {
			return err
		}
		res := make([]CargoResponse, 0, len(cargos))
		for _, cg := range cargos {
			res = append(res, toCargoResponse(cg))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/cargos/:id/status
func UpdateCargoStatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before, after, err := UpdateCargoStatus(c.UserContext(), db, c.Params("id"), body, time.Now().UTC())
		if err != nil {
			return httpError(err, "Cargo not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "cargo",
			EntityID:    after.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Kargo durumu güncellendi: %s -> %s", before.CurrentStatus, after.CurrentStatus),
			Before:      before,
			After:       after,
		})

		cargo, err := findCargo(c.UserContext(), db, after.ID)
		if err != nil {
			return err
		}
		return c.JSON(toCargoResponse(*cargo))
	}
}

// POST /api/admin/cargos
func CreateCargoHandler(db *gorm.DB, gen *idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCargoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		created, err := RegisterCargo(c.UserContext(), db, gen, body, time.Now().UTC())
		if err != nil {
			return httpError(err, "Cargo not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "cargo",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: "Kargo kaydı oluşturuldu: " + created.ID,
			After:       created,
		})

		cargo, err := findCargo(c.UserContext(), db, created.ID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toCargoResponse(*cargo))
	}
}

func findCargo(ctx context.Context, db *gorm.DB, id string) (*models.Cargo, error) {
	var cargo models.Cargo
	if err := withRelations(db.WithContext(ctx)).First(&cargo, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("kargo okunamadı: %w", err)
	}
	return &cargo, nil
}
