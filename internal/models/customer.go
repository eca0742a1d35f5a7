package models

import "time"

type Customer struct {
	ID        string `gorm:"primaryKey;size:5"`
	FirstName string `gorm:"size:60;not null"`
	LastName  string `gorm:"size:60;not null"`
	Email     string `gorm:"size:100"`
	Phone     string `gorm:"size:10"`
	City      string `gorm:"size:60"`
	CreatedAt time.Time
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
