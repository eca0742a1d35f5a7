package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

type EmployeeResponse struct {
	ID         uint            `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Position   models.Position `json:"position"`
	Salary     float64         `json:"salary"`
	Phone      string          `json:"phone"`
	BranchID   *uint           `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	HireDate   string          `json:"hire_date"` // "2025-01-06"
}

type CreateEmployeeRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Position  models.Position `json:"position"`
	Salary    float64         `json:"salary"`
	Phone     string          `json:"phone"`
	BranchID  *uint           `json:"branch_id"`
	HireDate  string          `json:"hire_date"` // boşsa bugün
}

type UpdateEmployeeRequest struct {
	Position *models.Position `json:"position"`
	Salary   *float64         `json:"salary"`
	Phone    *string          `json:"phone"`
	BranchID *uint            `json:"branch_id"`
}

func toEmployeeResponse(e models.Employee) EmployeeResponse {
	r := EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Position:  e.Position,
		Salary:    e.Salary,
		Phone:     e.Phone,
		BranchID:  e.BranchID,
		HireDate:  e.HireDate.Format(dateLayout),
	}
	if e.Branch != nil {
		r.BranchName = e.Branch.Name
	}
	return r
}

// -------------------------
// Doğrulama
// -------------------------

func validatePosition(p models.Position) error {
	if !p.Valid() {
		return invalid(fmt.Sprintf("Position must be one of the %d company positions", len(models.Positions)))
	}
	return nil
}

func validateSalary(s float64) error {
	if s < models.MinSalary {
		return invalid(fmt.Sprintf("Salary cannot be below %.2f", models.MinSalary))
	}
	return nil
}

func validatePhone(p string) error {
	if !phonePattern.MatchString(p) {
		return invalid("Phone number can have at most 10 digits")
	}
	return nil
}

func checkBranch(ctx context.Context, db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(&models.Branch{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return invalid("Branch not found")
	}
	return nil
}

// -------------------------
// Servis fonksiyonları
// -------------------------

func ListEmployees(ctx context.Context, db *gorm.DB) ([]models.Employee, error) {
	var emps []models.Employee
	if err := db.WithContext(ctx).Preload("Branch").Order("id DESC").Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("personel listelenemedi: %w", err)
	}
	return emps, nil
}

func CreateEmployee(ctx context.Context, db *gorm.DB, req CreateEmployeeRequest, today time.Time) (*models.Employee, error) {
	emp := models.Employee{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Position:  req.Position,
		Salary:    req.Salary,
		Phone:     strings.TrimSpace(req.Phone),
		BranchID:  req.BranchID,
		HireDate:  today,
	}
	if emp.FirstName == "" || emp.LastName == "" {
		return nil, invalid("Name and surname are required")
	}
	for _, err := range []error{validatePosition(emp.Position), validateSalary(emp.Salary), validatePhone(emp.Phone)} {
		if err != nil {
			return nil, err
		}
	}
	if req.HireDate != "" {
		d, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return nil, invalid("Hire date must be YYYY-MM-DD")
		}
		emp.HireDate = d
	}
	if err := checkBranch(ctx, db, emp.BranchID); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Omit(clause.Associations).Create(&emp).Error; err != nil {
		return nil, fmt.Errorf("personel eklenemedi: %w", err)
	}
	return &emp, nil
}

func UpdateEmployee(ctx context.Context, db *gorm.DB, id string, req UpdateEmployeeRequest) (before, after models.Employee, err error) {
	var emp models.Employee
	if err = db.WithContext(ctx).First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	before = emp

	if req.Position != nil {
		if err = validatePosition(*req.Position); err != nil {
			return
		}
		emp.Position = *req.Position
	}
	if req.Salary != nil {
		if err = validateSalary(*req.Salary); err != nil {
			return
		}
		emp.Salary = *req.Salary
	}
	if req.Phone != nil {
		p := strings.TrimSpace(*req.Phone)
		if err = validatePhone(p); err != nil {
			return
		}
		emp.Phone = p
	}
	if req.BranchID != nil {
		if err = checkBranch(ctx, db, req.BranchID); err != nil {
			return
		}
		emp.BranchID = req.BranchID
	}

	if err = db.WithContext(ctx).Omit(clause.Associations).Save(&emp).Error; err != nil {
		err = fmt.Errorf("personel güncellenemedi: %w", err)
		return
	}
	return before, emp, nil
}

func DeleteEmployee(ctx context.Context, db *gorm.DB, id string) (*models.Employee, error) {
	var emp models.Employee
	if err := db.WithContext(ctx).First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&emp).Error; err != nil {
		return nil, fmt.Errorf("personel silinemedi: %w", err)
	}
	return &emp, nil
}

// -------------------------
// Handler'lar
// -------------------------

// GET /api/admin/employees
func ListEmployeesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		emps, err := ListEmployees(c.UserContext(), db)
		if err != nil {
			return err
		}
		res := make([]EmployeeResponse, 0, len(emps))
		for _, e := range emps {
			res = append(res, toEmployeeResponse(e))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/employees
func CreateEmployeeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		now := time.Now().UTC()
		emp, err := CreateEmployee(c.UserContext(), db, body, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
		if err != nil {
			return httpError(err, "Employee not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Personel eklendi: %s %s", emp.FirstName, emp.LastName),
			After:       emp,
		})

		return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(*emp))
	}
}

// PUT /api/admin/employees/:id
func UpdateEmployeeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before, after, err := UpdateEmployee(c.UserContext(), db, c.Params("id"), body)
		if err != nil {
			return httpError(err, "Employee not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "employee",
			EntityID:    after.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Personel güncellendi: %s %s", after.FirstName, after.LastName),
			Before:      before,
			After:       after,
		})

		var emp models.Employee
		if err := db.WithContext(c.UserContext()).Preload("Branch").First(&emp, "id = ?", after.ID).Error; err != nil {
			return err
		}
		return c.JSON(toEmployeeResponse(emp))
	}
}

// DELETE /api/admin/employees/:id
func DeleteEmployeeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		emp, err := DeleteEmployee(c.UserContext(), db, c.Params("id"))
		if err != nil {
			return httpError(err, "Employee not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Personel silindi: %s %s", emp.FirstName, emp.LastName),
			Before:      emp,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
