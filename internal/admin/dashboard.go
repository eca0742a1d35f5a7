package admin

import (
	"context"
	"fmt"

	"thunder-cargo/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BranchDensity struct {
	BranchID   uint   `json:"branch_id"`
	BranchName string `json:"branch_name"`
	CargoCount int64  `json:"cargo_count"`
}

type DashboardResponse struct {
	TotalCargo     int64           `json:"total_cargo"`
	TotalRevenue   float64         `json:"total_revenue"`
	ActiveBranches int64           `json:"active_branches"`
	ByBranch       []BranchDensity `json:"by_branch"`
}

// Dashboard: genel sayılar ve çıkış şubesine göre kargo yoğunluğu
func Dashboard(ctx context.Context, db *gorm.DB) (*DashboardResponse, error) {
	db = db.WithContext(ctx)
	var resp DashboardResponse

	if err := db.Model(&models.Cargo{}).Count(&resp.TotalCargo).Error; err != nil {
		return nil, fmt.Errorf("kargo sayısı alınamadı: %w", err)
	}
	if err := db.Model(&models.Cargo{}).
		Select("COALESCE(SUM(shipping_cost), 0)").
		Scan(&resp.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("ciro alınamadı: %w", err)
	}
	if err := db.Model(&models.Branch{}).Count(&resp.ActiveBranches).Error; err != nil {
		return nil, fmt.Errorf("şube sayısı alınamadı: %w", err)
	}

	// aggregation sonucu satır yapısı
	type row struct {
		BranchID   uint   `gorm:"column:branch_id"`
		BranchName string `gorm:"column:branch_name"`
		CargoCount int64  `gorm:"column:cargo_count"`
	}
	var rows []row

	sql := `
		SELECT b.id AS branch_id,
			   b.name AS branch_name,
			   COUNT(c.id) AS cargo_count
		FROM cargos c
		JOIN branches b ON c.origin_branch_id = b.id
		GROUP BY b.id, b.name
		ORDER BY cargo_count DESC, b.name ASC
	`
	if err := db.Raw(sql).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("şube yoğunluğu alınamadı: %w", err)
	}

	resp.ByBranch = make([]BranchDensity, 0, len(rows))
	for _, r := range rows {
		resp.ByBranch = append(resp.ByBranch, BranchDensity(r))
	}
	return &resp, nil
}

// GET /api/admin/dashboard
func DashboardHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := Dashboard(c.UserContext(), db)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
