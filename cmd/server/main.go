package main

import (
	"fmt"
	"os"

	"thunder-cargo/internal/config"
	"thunder-cargo/internal/database"
	"thunder-cargo/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "thunder-cargo",
		Short:         "Thunder Cargo lojistik paneli backend'i",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML yapılandırma dosyası (CONFIG_FILE)")

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hata:", err)
		os.Exit(1)
	}
}

// env: her komutun ortak başlangıcı
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// Handler'ların paket seviyesindeki uyarıları (audit) aynı logger'a gitsin
	zap.ReplaceGlobals(log)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Info("veritabanı bağlantısı kuruldu", zap.String("driver", cfg.DatabaseDriver))

	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Tabloları oluşturur/günceller",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			e.log.Info("migration tamamlandı")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Demo verisini yükler (tablolar boşsa)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			seeded, err := database.Seed(e.db)
			if err != nil {
				return err
			}
			if seeded {
				e.log.Info("demo verisi yüklendi")
			} else {
				e.log.Info("veri zaten mevcut, seed atlandı")
			}
			return nil
		},
	}
}
