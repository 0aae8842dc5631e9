package config

import (
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES string
	APP_PORT    string

	JWTSecret            string
	JWTAccessExpiration  int // detik
	JWTRefreshExpiration int // detik

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SeedPorts     []string

	SnowflakeNode  int64
	RequestTimeout int // detik
	LoginRateLimit int

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite string

	allowedOrigins map[string]bool
)

func init() {
	setDefaults()
}

// LoadConfig membaca file .env dan menginisialisasi variabel konfigurasi
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	setDefaults()
}

func setDefaults() {
	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "shipops_secret_key")
	JWTAccessExpiration = getEnvAsInt("JWT_ACCESS_EXPIRATION", 60*60)
	JWTRefreshExpiration = getEnvAsInt("JWT_REFRESH_EXPIRATION", 30*24*60*60)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "postgres")
	DBName = getEnv("DB_NAME", "ship_operation")
	DBPath = getEnv("DB_PATH", "ship_operation.db")

	// Akun admin awal
	AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	AdminEmail = getEnv("ADMIN_EMAIL", "admin@example.com")
	AdminPassword = getEnv("ADMIN_PASSWORD", "admin123")
	SeedPorts = splitList(getEnv("SEED_PORTS", ""))

	SnowflakeNode = int64(getEnvAsInt("SNOWFLAKE_NODE", 1))
	RequestTimeout = getEnvAsInt("REQUEST_TIMEOUT", 15)
	LoginRateLimit = getEnvAsInt("LOGIN_RATE_LIMIT", 10)

	// Cookie Configuration
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", true)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	loadAllowedOrigins()
}

func AccessTokenTTL() time.Duration {
	return time.Duration(JWTAccessExpiration) * time.Second
}

func RefreshTokenTTL() time.Duration {
	return time.Duration(JWTRefreshExpiration) * time.Second
}

// getEnv membaca environment variable dengan nilai default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt membaca environment variable sebagai integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool membaca environment variable sebagai boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// splitList memecah nilai dipisah koma, item kosong dibuang
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// loadAllowedOrigins memuat daftar origin yang diizinkan dari environment variable
func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		// Default origins untuk frontend vite lokal
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:5173": true,
			"http://localhost:5173": true,
		}
		return
	}

	for _, origin := range splitList(originsStr) {
		allowedOrigins[origin] = true
	}
}

func AllowedOrigins() string {
	origins := make([]string, 0, len(allowedOrigins))
	for origin := range allowedOrigins {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return strings.Join(origins, ",")
}

func SetupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     AllowedOrigins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: true,
	}))
}

// GetTokenCookie menyimpan refresh token di cookie, token kosong menghapus cookie
func GetTokenCookie(token string) *fiber.Cookie {
	expires := time.Now().Add(RefreshTokenTTL())
	if token == "" {
		expires = time.Now().Add(-time.Hour)
	}
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}
