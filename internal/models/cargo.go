package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// Cargo: uçtan uca takip edilen tek gönderi. Hiçbir zaman silinmez.
type Cargo struct {
	ID             string   `gorm:"primaryKey;size:5"`
	SenderCustID   string   `gorm:"size:5;index;not null"`
	Sender         Customer `gorm:"foreignKey:SenderCustID"`
	ReceiverCustID string   `gorm:"size:5;index;not null"`
	Receiver       Customer `gorm:"foreignKey:ReceiverCustID"`
	OriginBranchID uint     `gorm:"index;not null"`
	OriginBranch   Branch   `gorm:"foreignKey:OriginBranchID"`
	DestBranchID   uint     `gorm:"index;not null"`
	DestBranch     Branch   `gorm:"foreignKey:DestBranchID"`
	ServiceTypeID  uint     `gorm:"not null"`
	ServiceType    ServiceType
	Weight         float64       `gorm:"not null"`
	ShippingCost   float64       `gorm:"not null"`
	CurrentStatus  string        `gorm:"size:100;not null"` // serbest metin, sadece gösterim etiketi
	PaymentStatus  PaymentStatus `gorm:"size:20;not null;default:Pending"`
	LastUpdated    time.Time     `gorm:"index;not null"`
}

type ServiceType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;unique"`
}
