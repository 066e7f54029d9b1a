package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr            string
	GinMode            string
	DBDSN              string
	JWTSecret          string
	InstalmentScanSpec string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/backoffice?parseTime=false&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	scanSpec := strings.TrimSpace(os.Getenv("INSTALMENT_SCAN_SPEC"))
	if scanSpec == "" {
		// daily morning scan
		scanSpec = "0 8 * * *"
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:              dsn,
		JWTSecret:          secret,
		InstalmentScanSpec: scanSpec,
	}
}
