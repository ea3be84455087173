package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr      string
	InternalToken string

	TemplatePath   string
	SettingsPath   string
	DefaultSaveDir string
	SecretsPath    string

	SMTPHost string
	SMTPPort int

	SofficeBin        string
	ConvertTimeout    time.Duration
	NativePDFFallback bool
}

func MustLoad() Config {
	return Config{
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		InternalToken: mustEnv("INTERNAL_TOKEN"),

		TemplatePath:   env("TEMPLATE_PATH", "templates/SS.xlsx"),
		SettingsPath:   env("SETTINGS_PATH", "output/app_settings.json"),
		DefaultSaveDir: env("DEFAULT_SAVE_DIR", "output/quotes"),
		SecretsPath:    env("SECRETS_PATH", "output/secrets.json"),

		SMTPHost: env("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: envInt("SMTP_PORT", 587),

		SofficeBin:        env("SOFFICE_BIN", "soffice"),
		ConvertTimeout:    time.Duration(envInt("CONVERT_TIMEOUT_SEC", 60)) * time.Second,
		NativePDFFallback: env("NATIVE_PDF_FALLBACK", "") == "1",
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
