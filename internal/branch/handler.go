package branch

import (
	"errors"
	"strings"

	"thunder-cargo/internal/audit"
	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BranchResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type CreateBranchRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type UpdateBranchRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	District *string `json:"district"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

func toResponse(b models.Branch) BranchResponse {
	return BranchResponse{
		ID:       b.ID,
		Name:     b.Name,
		Address:  b.Address,
		City:     b.City,
		District: b.District,
		Phone:    b.Phone,
		Email:    b.Email,
	}
}

// ----------------------------------------
// ŞUBE BULUCU (herkese açık)
// ----------------------------------------

// GET /api/public/branches/cities
func CitiesHandler(l *Locator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cities, err := l.Cities(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"cities": cities})
	}
}

// GET /api/public/branches/districts?city=Istanbul
func DistrictsHandler(l *Locator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		districts, err := l.Districts(c.UserContext(), c.Query("city"))
		if errors.Is(err, ErrCityRequired) {
			return fiber.NewError(fiber.StatusBadRequest, "Please select a city")
		}
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"city":      strings.TrimSpace(c.Query("city")),
			"districts": append([]string{AllDistricts}, districts...),
		})
	}
}

// GET /api/public/branches?city=Istanbul&district=Kadikoy
func FindBranchesHandler(l *Locator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branches, err := l.Branches(c.UserContext(), c.Query("city"), c.Query("district"))
		if errors.Is(err, ErrCityRequired) {
			return fiber.NewError(fiber.StatusBadRequest, "Please select a city")
		}
		if err != nil {
			return err
		}

		res := make([]BranchResponse, 0, len(branches))
		for _, b := range branches {
			res = append(res, toResponse(b))
		}
		return c.JSON(res)
	}
}

// ----------------------------------------
// ŞUBE CRUD (admin)
// ----------------------------------------

func CreateBranchHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		branch := models.Branch{
			Name:     strings.TrimSpace(body.Name),
			Address:  strings.TrimSpace(body.Address),
			City:     strings.TrimSpace(body.City),
			District: strings.TrimSpace(body.District),
			Phone:    strings.TrimSpace(body.Phone),
			Email:    strings.TrimSpace(body.Email),
		}
		if branch.Name == "" || branch.City == "" || branch.District == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Branch name, city and district are required")
		}

		if err := db.WithContext(c.UserContext()).Create(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Branch could not be created")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "branch",
			EntityID:    branch.ID,
			Action:      models.AuditActionCreate,
			Description: "Şube eklendi: " + branch.Name,
			After:       branch,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(branch))
	}
}

func ListBranchesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branches []models.Branch
		if err := db.WithContext(c.UserContext()).Order("id asc").Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Branches could not be listed")
		}
		res := make([]BranchResponse, 0, len(branches))
		for _, b := range branches {
			res = append(res, toResponse(b))
		}
		return c.JSON(res)
	}
}

func GetBranchHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branch models.Branch
		if err := db.WithContext(c.UserContext()).First(&branch, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		return c.JSON(toResponse(branch))
	}
}

func UpdateBranchHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branch models.Branch
		if err := db.WithContext(c.UserContext()).First(&branch, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		before := branch

		var body UpdateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		required := []struct {
			in  *string
			dst *string
		}{
			{body.Name, &branch.Name},
			{body.City, &branch.City},
			{body.District, &branch.District},
		}
		for _, f := range required {
			if f.in == nil {
				continue
			}
			v := strings.TrimSpace(*f.in)
			if v == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Branch name, city and district cannot be empty")
			}
			*f.dst = v
		}
		if body.Address != nil {
			branch.Address = strings.TrimSpace(*body.Address)
		}
		if body.Phone != nil {
			branch.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			branch.Email = strings.TrimSpace(*body.Email)
		}

		if err := db.WithContext(c.UserContext()).Save(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Branch could not be updated")
		}

		audit.Record(c.UserContext(), db, audit.LogOptions{
			Actor:       auth.SessionFrom(c),
			EntityType:  "branch",
			EntityID:    branch.ID,
			Action:      models.AuditActionUpdate,
			Description: "Şube güncellendi: " + branch.Name,
			Before:      before,
			After:       branch,
		})

		return c.JSON(toResponse(branch))
	}
}
