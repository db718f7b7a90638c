package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv string
	AppURL string
	Port   string
	DBType string
	DBHost string
	DBUser string
	DBPass string
	DBName string
	DBPort string
	DBSSL  string
	// Base64 (URL encoding) session and CSRF keys, see `generate-keys`.
	AppAuthKey string
	AppEncKey  string
	CSRFKey    string

	SheetsWebhookURL string

	LogLevel     string
	LogFile      string
	TemplatesDir string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found")
	}

	return ENV{
		AppEnv:           getenv("APP_ENV", "development"),
		AppURL:           getenv("APP_URL", "http://localhost:8080"),
		Port:             normalizePort(getenv("APP_PORT", ":8080")),
		DBType:           strings.ToLower(getenv("DB_TYPE", "mysql")),
		DBHost:           getenv("DB_HOST", "localhost"),
		DBUser:           os.Getenv("DB_USER"),
		DBPass:           os.Getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME", "general_equipments"),
		DBPort:           getenv("DB_PORT", "3306"),
		DBSSL:            getenv("DB_SSLMODE", "disable"),
		AppAuthKey:       strings.TrimSpace(os.Getenv("APP_AUTH_KEY")),
		AppEncKey:        strings.TrimSpace(os.Getenv("APP_ENC_KEY")),
		CSRFKey:          strings.TrimSpace(os.Getenv("CSRF_KEY")),
		SheetsWebhookURL: strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_WEBHOOK_URL")),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFile:          strings.TrimSpace(os.Getenv("LOG_FILE")),
		TemplatesDir:     getenv("TEMPLATES_DIR", "templates"),
	}
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

// CookieSecure marks session and CSRF cookies Secure outside development.
func (e ENV) CookieSecure() bool {
	return e.IsProduction()
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func normalizePort(p string) string {
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}
