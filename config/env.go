package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv string
	Port   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string

	ProcessingFee decimal.Decimal
	DeliveryFee   decimal.Decimal
	DeliveryZips  []string

	OrderLimitPerDay int
	LeadTimeDays     int
	BlockedWeekdays  []time.Weekday
	HolidayDates     []string
	SlotStartHour    int
	SlotEndHour      int

	RelayURL string

	CartTTL time.Duration

	AssetCacheVersion string
	AssetOriginURL    string
	AssetURLs         []string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", getEnv("PORT", "8082")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "catering_shop"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		ProcessingFee: getEnvDecimal("PROCESSING_FEE", "1.99"),
		DeliveryFee:   getEnvDecimal("DELIVERY_FEE", "4.99"),
		DeliveryZips:  getEnvList("DELIVERY_ZIPS", "07030,07302,07304,07306,07307,07310"),

		OrderLimitPerDay: getEnvInt("ORDER_LIMIT_PER_DAY", 2),
		LeadTimeDays:     getEnvInt("LEAD_TIME_DAYS", 3),
		BlockedWeekdays:  parseWeekdays(getEnvList("BLOCKED_WEEKDAYS", "Friday")),
		HolidayDates:     getEnvList("HOLIDAY_DATES", "2025-11-27,2025-11-28,2025-12-24,2025-12-25"),
		SlotStartHour:    getEnvInt("SLOT_START_HOUR", 12),
		SlotEndHour:      getEnvInt("SLOT_END_HOUR", 20),

		RelayURL: getEnv("RELAY_URL", "https://formspree.io/f/placeholder"),

		CartTTL: getEnvDuration("CART_TTL", 720*time.Hour),

		AssetCacheVersion: getEnv("ASSET_CACHE_VERSION", "storefront-v2"),
		AssetOriginURL:    getEnv("ASSET_ORIGIN_URL", "http://localhost:8080"),
		AssetURLs: getEnvList("ASSET_URLS",
			"/,/index.html,/menu.html,/cart.html,/faq.html,/catering.html,/style.css,/cart.js,/manifest.json"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: invalid decimal for %s, using default %s", key, defaultValue)
		d, _ = decimal.NewFromString(defaultValue)
	}
	return d
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := []string{}
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func parseWeekdays(names []string) []time.Weekday {
	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	days := []time.Weekday{}
	for _, name := range names {
		day, ok := byName[strings.ToLower(name)]
		if !ok {
			log.Printf("Warning: unknown weekday %q in BLOCKED_WEEKDAYS, skipping", name)
			continue
		}
		days = append(days, day)
	}
	return days
}
