package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port     string
	GinMode  string
	DBDriver string
	DBDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	CatalogFile    string
	RestaurantName string
	PublicBaseURL  string
	CORSOrigins    []string

	// StaffKey guards the staff live feed; empty leaves it open.
	StaffKey string

	RedisURL string
	AMQPURL  string

	AttendanceResetCron string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("No .env file loaded, using process environment")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:               getEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/restaurant?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            getDuration("TOKEN_TTL", 24*time.Hour),
		CatalogFile:         getEnv("CATALOG_FILE", "catalog.yaml"),
		RestaurantName:      getEnv("RESTAURANT_NAME", "Restaurant"),
		StaffKey:            os.Getenv("STAFF_KEY"),
		PublicBaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "http://127.0.0.1:5500,http://localhost:3000")),
		RedisURL:            os.Getenv("REDIS_URL"),
		AMQPURL:             os.Getenv("AMQP_URL"),
		AttendanceResetCron: os.Getenv("ATTENDANCE_RESET_CRON"),
		RateLimitRPS:        getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:      getInt("RATE_LIMIT_BURST", 50),
	}
}

// InitDB opens the configured database. Supported drivers are mysql,
// postgres and sqlite.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" || cfg.DBDriver == "sqlite3" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	utils.InfoLogger.Printf("Connected to %s database", cfg.DBDriver)
	return db, nil
}

// CatalogCategory is one entry of the catalog file.
type CatalogCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type catalogFile struct {
	Categories []CatalogCategory `yaml:"categories"`
}

// DefaultCategories is used when no catalog file is available.
var DefaultCategories = []CatalogCategory{
	{Name: "Brownies"}, {Name: "Burger"}, {Name: "Cake"}, {Name: "Chaat"},
	{Name: "Chinese"}, {Name: "Coffee"}, {Name: "Dosa"}, {Name: "Idli"},
	{Name: "Ice Cream"}, {Name: "Jalebi"}, {Name: "Juice"}, {Name: "Momos"},
	{Name: "Noodles"}, {Name: "Paneer"}, {Name: "Pasta"}, {Name: "Pizza"},
	{Name: "Rolls"}, {Name: "Salad"}, {Name: "Sandwich"}, {Name: "Shakes"},
	{Name: "Soft Drinks"}, {Name: "Thali"},
}

// LoadCatalogCategories reads the category list from a YAML file. A missing
// file yields DefaultCategories.
func LoadCatalogCategories(path string) ([]CatalogCategory, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		utils.InfoLogger.Printf("Catalog file %s not found, using built-in categories", path)
		return DefaultCategories, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalogCategories(raw)
}

func ParseCatalogCategories(raw []byte) ([]CatalogCategory, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("catalog file lists no categories")
	}
	return f.Categories, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
