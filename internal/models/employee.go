package models

import "time"

type Position string

const (
	PositionIntern          Position = "Intern"
	PositionJanitor         Position = "Janitor"
	PositionCourier         Position = "Courier"
	PositionBranchManager   Position = "Branch Manager"
	PositionDriver          Position = "Driver"
	PositionRegionalManager Position = "Regional Manager"
	PositionHumanResources  Position = "Human Resources"
	PositionDeskOfficer     Position = "Desk Officer"
)

// Positions: formlarda gösterilen sabit sıra
var Positions = []Position{
	PositionIntern,
	PositionJanitor,
	PositionCourier,
	PositionBranchManager,
	PositionDriver,
	PositionRegionalManager,
	PositionHumanResources,
	PositionDeskOfficer,
}

func (p Position) Valid() bool {
	for _, v := range Positions {
		if v == p {
			return true
		}
	}
	return false
}

// MinSalary: asgari ücret (TL)
const MinSalary = 17002.0

type Employee struct {
	ID        uint     `gorm:"primaryKey"`
	FirstName string   `gorm:"size:60;not null"`
	LastName  string   `gorm:"size:60;not null"`
	Position  Position `gorm:"size:30;not null"`
	Salary    float64  `gorm:"not null"`
	Phone     string   `gorm:"size:10"`
	BranchID  *uint    `gorm:"index"`
	Branch    *Branch
	HireDate  time.Time
}
