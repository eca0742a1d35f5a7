package admin

import (
	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusOptions: durum güncelleme formunda sunulan hazır etiketler.
// Serbest metin de kabul edilir.
var StatusOptions = []string{
	"Preparing",
	"In Delivery for Cargo Branch",
	"Out for Delivery",
	"Delivered",
}

// Cities: müşteri kaydında seçilebilen şehirler
var Cities = []string{
	"Istanbul", "Ankara", "Izmir", "Bursa", "Antalya",
	"Trabzon", "Eskisehir", "Adana", "Samsun", "Gaziantep",
}

type OptionItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OptionsResponse struct {
	Statuses     []string          `json:"statuses"`
	Positions    []models.Position `json:"positions"`
	Cities       []string          `json:"cities"`
	ServiceTypes []OptionItem      `json:"service_types"`
	Branches     []OptionItem      `json:"branches"`
	MinSalary    float64           `json:"min_salary"`
}

// GET /api/admin/options  (form seçenekleri)
func OptionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var services []models.ServiceType
		if err := db.WithContext(ctx).Order("id asc").Find(&services).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Service types could not be listed")
		}
		var branches []models.Branch
		if err := db.WithContext(ctx).Order("name asc").Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Branches could not be listed")
		}

		resp := OptionsResponse{
			Statuses:     StatusOptions,
			Positions:    models.Positions,
			Cities:       Cities,
			ServiceTypes: make([]OptionItem, 0, len(services)),
			Branches:     make([]OptionItem, 0, len(branches)),
			MinSalary:    models.MinSalary,
		}
		for _, s := range services {
			resp.ServiceTypes = append(resp.ServiceTypes, OptionItem{ID: s.ID, Name: s.Name})
		}
		for _, b := range branches {
			resp.Branches = append(resp.Branches, OptionItem{ID: b.ID, Name: b.Name})
		}
		return c.JSON(resp)
	}
}
