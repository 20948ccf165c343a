package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig is read once from the environment at startup.
type AppConfig struct {
	Port            string
	GinMode         string
	CorsOrigins     []string
	AutoMigrate     bool
	Seed            bool
	SystemUserID    uint
	DefaultCurrency string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:            envOrDefault("PORT", "8080"),
		GinMode:         envOrDefault("GIN_MODE", "debug"),
		CorsOrigins:     ParseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		AutoMigrate:     envBool("DB_AUTO_MIGRATE", true),
		Seed:            envBool("DB_SEED", true),
		SystemUserID:    envUint("SYSTEM_USER_ID", 1),
		DefaultCurrency: strings.ToUpper(envOrDefault("DEFAULT_CURRENCY", "VND")),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		LogFile:         strings.TrimSpace(os.Getenv("LOG_FILE")),
	}
}

// ParseCorsOrigins splits a comma separated origin list. Empty input means
// any origin.
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

func envUint(key string, def uint) uint {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil || n == 0 {
		return def
	}
	return uint(n)
}
