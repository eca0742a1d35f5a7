package database

import (
	"fmt"
	"time"

	"thunder-cargo/internal/config"
	"thunder-cargo/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open: yapılandırmadaki sürücüye göre bağlantı açar (postgres veya sqlite).
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		dialector = postgres.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(log), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}
	return db, nil
}

// Migrate: tüm tabloları oluşturur/günceller.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Branch{},
		&models.ServiceType{},
		&models.CargoStatusType{},
		&models.Customer{},
		&models.Cargo{},
		&models.TrackingLog{},
		&models.Invoice{},
		&models.Employee{},
		&models.SupportTicket{},
		&models.CaptchaChallenge{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}

// ReadDB: elle yazılmış join sorguları için aynı havuzu paylaşan sqlx tutamağı.
// Placeholder'lar sürücüye göre Rebind ile çevrilir.
func ReadDB(db *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB alınamadı: %w", err)
	}
	name := "postgres"
	if driver == config.DriverSQLite {
		name = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, name), nil
}
