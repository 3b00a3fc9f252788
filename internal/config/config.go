package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Common
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	// API
	Port            string        `yaml:"port"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Store
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	// Redis (STORE=redis)
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisKey      string `yaml:"redis_key"`
	// Provider
	Provider        string        `yaml:"provider"`
	CoinGeckoBase   string        `yaml:"coingecko_api_base"`
	CoinGeckoAPIKey string        `yaml:"coingecko_api_key"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	FetchDelay      time.Duration `yaml:"fetch_delay"`
	// Cache and budget
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	CallBudget int64         `yaml:"call_budget"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func msDef(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, ""), defMS)) * time.Millisecond
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8000"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost,http://localhost:8000")),
		ShutdownTimeout: msDef("SHUTDOWN_TIMEOUT_MS", 10000),
		Store:           getEnv("STORE", "pg"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisKey:        getEnv("REDIS_KEY", "bitcoin_prices"),
		Provider:        getEnv("PROVIDER", "coingecko"),
		CoinGeckoBase:   getEnv("COINGECKO_API_BASE", "https://api.coingecko.com"),
		CoinGeckoAPIKey: getEnv("COINGECKO_API_KEY", ""),
		UpstreamTimeout: msDef("UPSTREAM_TIMEOUT_MS", 10000),
		FetchDelay:      msDef("FETCH_DELAY_MS", 2000),
		CacheTTL:        msDef("CACHE_TTL_MS", 120000),
		CallBudget:      int64(atoiDef(getEnv("CALL_BUDGET", "10000"), 10000)),
	}
}

// LoadFile overlays the YAML file at path on top of base. Keys absent from
// the file keep their base values.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnvAndFile is Load plus the optional CONFIG_FILE overlay.
func FromEnvAndFile() (Config, error) {
	cfg := Load()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFile(path, cfg)
	}
	return cfg, nil
}
