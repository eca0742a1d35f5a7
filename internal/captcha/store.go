package captcha

import (
	"context"
	"errors"
	"time"

	"thunder-cargo/internal/models"

	"gorm.io/gorm"
)

// GormStore keeps challenges in the captcha_challenges table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, c Challenge) error {
	return s.db.WithContext(ctx).Create(&models.CaptchaChallenge{
		ID:        c.ID,
		First:     c.First,
		Second:    c.Second,
		ExpiresAt: c.ExpiresAt,
	}).Error
}

// Take reads and deletes in one transaction; only the caller whose delete
// affected the row gets the challenge back.
func (s *GormStore) Take(ctx context.Context, id string) (Challenge, error) {
	var row models.CaptchaChallenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}
		res := tx.Delete(&models.CaptchaChallenge{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrChallengeNotFound
		}
		return nil
	})
	if err != nil {
		return Challenge{}, err
	}
	return Challenge{ID: row.ID, First: row.First, Second: row.Second, ExpiresAt: row.ExpiresAt}, nil
}

// PurgeExpired removes challenges nobody answered.
func (s *GormStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.CaptchaChallenge{})
	return res.RowsAffected, res.Error
}
