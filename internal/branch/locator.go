// Package branch implements the city -> district -> branch finder and branch records.
package branch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thunder-cargo/internal/models"

	"gorm.io/gorm"
)

// AllDistricts is the district choice that keeps every branch of the city.
const AllDistricts = "All Districts"

var ErrCityRequired = errors.New("city is required")

type Locator struct {
	db *gorm.DB
}

func NewLocator(db *gorm.DB) *Locator {
	return &Locator{db: db}
}

func (l *Locator) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	err := l.db.WithContext(ctx).Model(&models.Branch{}).
		Distinct().
		Order("city").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, fmt.Errorf("şehirler okunamadı: %w", err)
	}
	return cities, nil
}

func (l *Locator) Districts(ctx context.Context, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	var districts []string
	err := l.db.WithContext(ctx).Model(&models.Branch{}).
		Where("city = ?", city).
		Distinct().
		Order("district").
		Pluck("district", &districts).Error
	if err != nil {
		return nil, fmt.Errorf("ilçeler okunamadı: %w", err)
	}
	return districts, nil
}

// Branches lists the city's branches, narrowed to one district unless district
// is empty or AllDistricts.
func (l *Locator) Branches(ctx context.Context, city, district string) ([]models.Branch, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	q := l.db.WithContext(ctx).Where("city = ?", city)
	if d := strings.TrimSpace(district); d != "" && !strings.EqualFold(d, AllDistricts) {
		q = q.Where("district = ?", d)
	}

	var branches []models.Branch
	if err := q.Order("name").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("şubeler okunamadı: %w", err)
	}
	return branches, nil
}
