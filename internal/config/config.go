package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	SimModeRandom        = "random"
	SimModeDeterministic = "deterministic"
)

type Config struct {
	HTTPPort       string
	LogLevel       string
	LogFormat      string // "console" or "json"
	LogFile        string // empty logs to stderr only
	CatalogDSN     string
	SessionTTL     time.Duration // 0 disables idle expiry
	SessionSweep   string // cron spec for the idle-session sweep
	SimConfigPath  string
	SimMode        string
	SimSeed        uint64 // 0 seeds from the wall clock
	ChatGreeting   bool
	AllowedOrigins []string
	Sim            SimTuning

	// EnvFileLoaded records whether a .env file was found, for startup logging.
	EnvFileLoaded bool
}

// Load reads .env (if any) and the environment, then the optional simulator
// tuning file named by SIM_CONFIG.
func Load() (*Config, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "console")),
		LogFile:        getEnv("LOG_FILE", ""),
		CatalogDSN:     getEnv("CATALOG_DSN", "file:sera_catalog?mode=memory&cache=shared"),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		SessionSweep:   getEnv("SESSION_SWEEP", "@every 1m"),
		SimConfigPath:  getEnv("SIM_CONFIG", ""),
		SimMode:        strings.ToLower(getEnv("SIM_MODE", SimModeRandom)),
		SimSeed:        getEnvAsUint64("SIM_SEED", 0),
		ChatGreeting:   getEnvAsBool("CHAT_GREETING", true),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		Sim:            DefaultSimTuning(),
		EnvFileLoaded:  envLoaded,
	}

	if cfg.SimConfigPath != "" {
		tuning, err := LoadSimTuning(cfg.SimConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Sim = *tuning
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	var errs []string
	if c.HTTPPort == "" {
		errs = append(errs, "HTTP_PORT cannot be empty")
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q is not one of console, json", c.LogFormat))
	}
	if c.CatalogDSN == "" {
		errs = append(errs, "CATALOG_DSN cannot be empty")
	}
	if c.SessionTTL < 0 {
		errs = append(errs, "SESSION_TTL must be >= 0")
	}
	if _, err := cron.ParseStandard(c.SessionSweep); err != nil {
		errs = append(errs, fmt.Sprintf("SESSION_SWEEP %q is not a valid schedule: %v", c.SessionSweep, err))
	}
	if c.SimMode != SimModeRandom && c.SimMode != SimModeDeterministic {
		errs = append(errs, fmt.Sprintf("SIM_MODE %q is not one of random, deterministic", c.SimMode))
	}
	if err := c.Sim.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseUint(strings.TrimSpace(valueStr), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(getEnv(key, ""))); err == nil {
		return d
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
