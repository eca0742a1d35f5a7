package models

import "time"

// Invoice: ödeme durumu bağlı olduğu kargonun PaymentStatus alanında tutulur
type Invoice struct {
	ID          uint      `gorm:"primaryKey"`
	CargoID     string    `gorm:"size:5;index;not null"`
	CustID      string    `gorm:"size:5;index;not null"`
	TotalAmount float64   `gorm:"not null"`
	InvoiceDate time.Time `gorm:"not null"`
}

// SupportTicket: müşterinin gönderisi için açtığı şikayet kaydı
type SupportTicket struct {
	ID        uint   `gorm:"primaryKey"`
	CargoID   string `gorm:"size:5;index;not null"`
	CustID    string `gorm:"size:5;index;not null"`
	Message   string `gorm:"size:500"`
	CreatedAt time.Time
}
