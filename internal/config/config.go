// -----------------------------------------------------------------------------
// Config Package
// -----------------------------------------------------------------------------
// Uygulamanın merkezi konfigürasyon yönetimi. Ortam değişkenlerini okuyarak
// uygulama, veritabanı, Redis, cache, queue, mail, ödeme ve sweep ayarlarını
// tip güvenli bir nesnede toplar. Eksik değişkenlerde log uyarısı verir ve
// varsayılanları kullanır.
// -----------------------------------------------------------------------------

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config, uygulamanın merkezi yapılandırma nesnesidir.
type Config struct {
	App struct {
		Name string
		Env  string // development, production, test
		URL  string
	}

	Server struct {
		Port string
	}

	DB struct {
		DSN             string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}

	JWT struct {
		Secret            string
		Expiration        time.Duration
		RefreshExpiration time.Duration
	}

	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
	}

	Cache struct {
		Driver string // redis, memory
		Prefix string
	}

	RateLimit struct {
		Enabled       bool
		MaxRequests   int
		WindowSeconds int
	}

	Mail struct {
		Driver      string
		Host        string
		Port        int
		FromAddress string
	}

	Queue struct {
		Driver      string // redis, sync
		Default     string
		RetryAfter  int
		MaxAttempts int
	}

	// Ödeme sağlayıcı ayarları: network hatalarında retry sayısı ve ilk
	// bekleme süresi (her denemede ikiye katlanır).
	Gateway struct {
		MaxRetries   int
		RetryBackoff time.Duration
	}

	// Süresi dolan kampanyaları sonuçlandıran periyodik tarama.
	Sweep struct {
		Interval   time.Duration
		BatchLimit int
	}
}

// Load, ortam değişkenlerini okuyarak Config nesnesini döndürür.
func Load() *Config {
	cfg := &Config{}

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		log.Printf("⚠️  Uyarı: %s ortam değişkeni bulunamadı, varsayılan (%s) kullanılıyor.", key, defaultValue)
		return defaultValue
	}

	getEnvAsInt := func(key string, defaultValue int) int {
		valueStr := os.Getenv(key)
		if valueStr == "" {
			log.Printf("⚠️  Uyarı: %s ortam değişkeni bulunamadı, varsayılan (%d) kullanılıyor.", key, defaultValue)
			return defaultValue
		}

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			log.Printf("⚠️  Uyarı: %s için geçersiz değer: %s, varsayılan (%d) kullanılıyor.", key, valueStr, defaultValue)
			return defaultValue
		}

		return value
	}

	getEnvAsBool := func(key string, defaultValue bool) bool {
		valueStr := os.Getenv(key)
		if valueStr == "" {
			return defaultValue
		}

		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			log.Printf("⚠️  Uyarı: %s için geçersiz boolean değer: %s, varsayılan (%t) kullanılıyor.", key, valueStr, defaultValue)
			return defaultValue
		}

		return value
	}

	getEnvAsDuration := func(key string, defaultSeconds int) time.Duration {
		seconds := getEnvAsInt(key, defaultSeconds)
		return time.Duration(seconds) * time.Second
	}

	cfg.App.Name = getEnv("APP_NAME", "GroupBuy-Go")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.URL = getEnv("APP_URL", "http://localhost:8000")

	cfg.Server.Port = getEnv("PORT", "8000")

	cfg.DB.DSN = getEnv("DB_DSN", "root:password@tcp(127.0.0.1:3306)/groupbuy?parseTime=true")
	cfg.DB.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	cfg.DB.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 25)
	cfg.DB.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", 300)

	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production")
	cfg.JWT.Expiration = getEnvAsDuration("JWT_EXPIRATION", 3600)
	cfg.JWT.RefreshExpiration = getEnvAsDuration("JWT_REFRESH_EXPIRATION", 604800)

	cfg.Redis.Host = getEnv("REDIS_HOST", "127.0.0.1")
	cfg.Redis.Port = getEnvAsInt("REDIS_PORT", 6379)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	cfg.Cache.Driver = getEnv("CACHE_DRIVER", "memory")
	cfg.Cache.Prefix = getEnv("CACHE_PREFIX", "groupbuy:")

	cfg.RateLimit.Enabled = getEnvAsBool("RATE_LIMIT_ENABLED", true)
	cfg.RateLimit.MaxRequests = getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100)
	cfg.RateLimit.WindowSeconds = getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg.Mail.Driver = getEnv("MAIL_DRIVER", "smtp")
	cfg.Mail.Host = getEnv("MAIL_HOST", "localhost")
	cfg.Mail.Port = getEnvAsInt("MAIL_PORT", 1025)
	cfg.Mail.FromAddress = getEnv("MAIL_FROM_ADDRESS", "noreply@groupbuy-go.local")

	cfg.Queue.Driver = getEnv("QUEUE_DRIVER", "redis")
	cfg.Queue.Default = getEnv("QUEUE_DEFAULT", "default")
	cfg.Queue.RetryAfter = getEnvAsInt("QUEUE_RETRY_AFTER", 90)
	cfg.Queue.MaxAttempts = getEnvAsInt("QUEUE_MAX_ATTEMPTS", 3)

	cfg.Gateway.MaxRetries = getEnvAsInt("GATEWAY_MAX_RETRIES", 3)
	cfg.Gateway.RetryBackoff = time.Duration(getEnvAsInt("GATEWAY_RETRY_BACKOFF_MS", 200)) * time.Millisecond

	cfg.Sweep.Interval = getEnvAsDuration("SWEEP_INTERVAL", 60)
	cfg.Sweep.BatchLimit = getEnvAsInt("SWEEP_BATCH_LIMIT", 100)

	if err := cfg.Validate(); err != nil {
		log.Printf("❌ Config validation hatası: %v", err)
	}

	return cfg
}

// Validate, config değerlerinin geçerliliğini kontrol eder. Production için
// kritik kontroller yapar.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT_SECRET production'da en az 32 karakter olmalı")
		}
		if c.JWT.Secret == "your-super-secret-jwt-key-change-this-in-production" {
			return fmt.Errorf("JWT_SECRET production'da değiştirilmelidir")
		}
	}

	validDrivers := map[string]bool{
		"redis":  true,
		"memory": true,
	}
	if !validDrivers[c.Cache.Driver] {
		return fmt.Errorf("geçersiz CACHE_DRIVER: %s (redis veya memory olmalı)", c.Cache.Driver)
	}

	if c.Sweep.Interval < time.Second {
		return fmt.Errorf("SWEEP_INTERVAL en az 1 saniye olmalı")
	}

	if c.IsProduction() && c.Cache.Driver == "memory" {
		log.Println("⚠️  UYARI: Memory cache production ortamı için önerilmez!")
	}

	return nil
}

// IsProduction, production ortamında çalışılıp çalışılmadığını söyler.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment, development ortamında çalışılıp çalışılmadığını söyler.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsTest, test ortamında çalışılıp çalışılmadığını söyler.
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}
