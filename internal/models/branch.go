package models

import "time"

// Branch: kargo şubesi (çıkış/varış/aktarma noktası)
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;unique" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	City      string    `gorm:"size:60;not null;index:idx_branch_city_district" json:"city"`
	District  string    `gorm:"size:60;not null;index:idx_branch_city_district" json:"district"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
