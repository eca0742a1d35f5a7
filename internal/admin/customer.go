package admin

import (
	"context"
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/idgen"
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	phonePattern  = regexp.MustCompile(`^[0-9]{0,10}$`)
)

type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}

func toCustomerResponse(c models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		City:      c.City,
	}
}

// NewCustomerIDGenerator: "CU" + 3 karakter
func NewCustomerIDGenerator(db *gorm.DB) (*idgen.Generator, error) {
	return idgen.New(existsIn(db, &models.Customer{}), idgen.WithPrefix("CU"))
}

func RegisterCustomer(ctx context.Context, db *gorm.DB, gen *idgen.Generator, req CreateCustomerRequest) (*models.Customer, error) {
	cust := models.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.Join(strings.Fields(req.Phone), ""),
		City:      strings.TrimSpace(req.City),
	}

	if cust.FirstName == "" || cust.LastName == "" {
		return nil, invalid("Name and surname are required")
	}
	if cust.Email != "" {
		addr, err := mail.ParseAddress(cust.Email)
		if err != nil || addr.Address != cust.Email {
			return nil, invalid("Email must look like username@example.com")
		}
	}
	if !mobilePattern.MatchString(cust.Phone) {
		return nil, invalid("Phone number must be 10 digits")
	}
	if !slices.Contains(Cities, cust.City) {
		return nil, invalid("City must be one of: " + strings.Join(Cities, ", "))
	}

	id, err := gen.Next(ctx)
	if err != nil {
		return nil, err
	}
	cust.ID = id

	if err := db.WithContext(ctx).Create(&cust).Error; err != nil {
		return nil, err
	}
	return &cust, nil
}

// GET /api/admin/customers
func ListCustomersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := db.WithContext(c.UserContext()).Order("id asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customers could not be listed")
		}
		res := make([]CustomerResponse, 0, len(customers))
		for _, cu := range customers {
			res = append(res, toCustomerResponse(cu))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/customers
func CreateCustomerHandler(db *gorm.DB, gen *idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cust, err := RegisterCustomer(c.UserContext(), db, gen, body)
		if err != nil {
			return httpError(err, "Customer not found")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "customer",
			EntityID:    cust.ID,
			Action:      models.AuditActionCreate,
			Description: "Müşteri eklendi: " + cust.FullName(),
			After:       cust,
		})

		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(*cust))
	}
}
