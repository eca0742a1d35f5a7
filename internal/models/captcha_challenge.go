package models

import "time"

// CaptchaChallenge: tek kullanımlık toplama sorusu. Doğrulama denemesi satırı siler.
type CaptchaChallenge struct {
	ID        string    `gorm:"primaryKey;size:36"`
	First     int       `gorm:"not null"`
	Second    int       `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
