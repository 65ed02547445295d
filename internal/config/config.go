package config // package config loads application configuration from environment variables

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the admin service.  Every field has
// a default, so the service starts with no environment at all.
type Config struct {
	Env            string        // application environment (e.g. "development", "production")
	Port           string        // HTTP port to listen on
	LogLevel       string        // zerolog level name
	FixtureDir     string        // directory holding users.json, rooms.json and bookings.json
	FixtureBaseURL string        // when set, fixtures are fetched over HTTP from here instead
	FixtureTimeout time.Duration // timeout for one fixture fetch
	PageSize       int           // rows per list page
	IDStrategy     string        // "max_plus_one" or "monotonic"
	SortLocale     string        // BCP 47 tag used to collate text columns
}

// LoadDotEnv reads a .env file into the process environment when one is
// present.  Variables already set win over the file.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load reads configuration values from environment variables.
func Load() Config {
	cfg := Config{
		Env:            envStr("APP_ENV", "development"),
		Port:           envStr("APP_PORT", "8080"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		FixtureDir:     envStr("FIXTURE_DIR", "fixtures"),
		FixtureBaseURL: envStr("FIXTURE_BASE_URL", ""),
		FixtureTimeout: envDur("FIXTURE_TIMEOUT", 5*time.Second),
		PageSize:       envInt("PAGE_SIZE", 5),
		IDStrategy:     envStr("ID_STRATEGY", "max_plus_one"),
		SortLocale:     envStr("SORT_LOCALE", "en"),
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 5
	}
	return cfg
}
