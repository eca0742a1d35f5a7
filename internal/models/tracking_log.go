package models

import "time"

// CargoStatusType: hareket kayıtlarının durum açıklamaları
type CargoStatusType struct {
	ID          uint   `gorm:"primaryKey"`
	Description string `gorm:"size:100;not null;unique"`
}

// TrackingLog: kargonun hareket geçmişi. Sadece eklenir, güncellenmez/silinmez.
type TrackingLog struct {
	ID           uint            `gorm:"primaryKey"`
	CargoID      string          `gorm:"size:5;index;not null"`
	StatusID     uint            `gorm:"not null"`
	Status       CargoStatusType `gorm:"foreignKey:StatusID"`
	BranchID     uint            `gorm:"not null"`
	Branch       Branch
	LogTimestamp time.Time `gorm:"index;not null"`
}
