package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=thunder_cargo port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:5173"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Account: statik giriş tablosundaki tek bir demo hesap.
// PasswordHash doluysa Password yok sayılır.
type Account struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
	DisplayName  string `yaml:"display_name"`
	CustomerID   string `yaml:"customer_id"`
}

type Config struct {
	HTTPPort       string        `yaml:"http_port"`
	DatabaseDriver string        `yaml:"database_driver"`
	DatabaseDSN    string        `yaml:"database_dsn"`
	JWTSecret      string        `yaml:"jwt_secret"`
	CORSOrigins    string        `yaml:"cors_allowed_origins"`
	LogLevel       string        `yaml:"log_level"`
	CaptchaTTL     time.Duration `yaml:"captcha_ttl"`
	PaymentDelay   time.Duration `yaml:"payment_delay"` // sahte ödeme bekleme süresi
	Accounts       []Account     `yaml:"accounts"`

	// Load sırasında oluşan, logger hazır olunca basılacak uyarılar
	Warnings []string `yaml:"-"`
}

// DemoAccounts: eski dashboard'daki sabit demo girişleri.
func DemoAccounts() []Account {
	return []Account{
		{Username: "admin", Password: "admin123", Role: "admin", DisplayName: "Administrator"},
		{Username: "client", Password: "1234", Role: "customer", DisplayName: "Ahmet Yilmaz", CustomerID: "CU001"},
	}
}

func defaults() *Config {
	return &Config{
		HTTPPort:       "8080",
		DatabaseDriver: DriverPostgres,
		DatabaseDSN:    defaultDSN,
		CORSOrigins:    defaultCORSOrigins,
		LogLevel:       "info",
		CaptchaTTL:     10 * time.Minute,
		PaymentDelay:   1500 * time.Millisecond,
	}
}

// Load: önce (varsa) YAML dosyası, sonra environment değişkenleri.
// Env her zaman dosyayı ezer.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config dosyası okunamadı: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config dosyası çözümlenemedi: %w", err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseDriver = strings.ToLower(getEnv("DATABASE_DRIVER", cfg.DatabaseDriver))
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.CORSOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.CaptchaTTL, err = getDuration("CAPTCHA_TTL", cfg.CaptchaTTL); err != nil {
		return nil, err
	}
	if cfg.PaymentDelay, err = getDuration("PAYMENT_DELAY", cfg.PaymentDelay); err != nil {
		return nil, err
	}

	if len(cfg.Accounts) == 0 {
		cfg.Accounts = DemoAccounts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DatabaseDSN == defaultDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla.")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET tanımlanmamış")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET en az 32 karakter olmalıdır")
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("desteklenmeyen DATABASE_DRIVER: %q", c.DatabaseDriver)
	}
	if c.CaptchaTTL <= 0 {
		return errors.New("CAPTCHA_TTL pozitif olmalı")
	}
	if c.PaymentDelay < 0 {
		return errors.New("PAYMENT_DELAY negatif olamaz")
	}
	for _, a := range c.Accounts {
		if a.Username == "" || (a.Password == "" && a.PasswordHash == "") {
			return errors.New("her hesap için username ve password (veya password_hash) zorunlu")
		}
	}
	return nil
}

// CORSOriginList: virgülle ayrılmış origin listesini temizler.
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s geçersiz süre: %w", key, err)
	}
	return d, nil
}
