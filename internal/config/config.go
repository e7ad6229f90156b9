package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BarcodeRoutePath  = "path"
	BarcodeRouteQuery = "query"
)

type Config struct {
	AppEnv         string
	APIBaseURL     string
	RequestTimeout time.Duration
	Verbose        bool
	MockFallback   bool
	BarcodeRoute   string
	RateLimitRPS   float64
	RateLimitBurst int

	MockAddr    string
	MockSeed    bool
	PostgresDSN string

	OTLPEndpoint string
	OTLPInsecure bool
	OTLPHeaders  string
	ServiceName  string
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare numbers are milliseconds, like the browser client's timeout option
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64); err == nil && f >= 0 {
		return f
	}
	return def
}

func getenvInt(k string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil && n > 0 {
		return n
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists

	env := strings.ToLower(getenv("APP_ENV", EnvDevelopment))
	cfg := Config{
		AppEnv:         env,
		APIBaseURL:     getenv("POS_API_BASEURL", "http://localhost:8080"),
		RequestTimeout: getenvDuration("POS_API_TIMEOUT", 10*time.Second),
		Verbose:        getenvBool("POS_VERBOSE_LOGGING", env != EnvProduction),
		MockFallback:   getenvBool("POS_MOCK_FALLBACK", false),
		BarcodeRoute:   getenv("POS_BARCODE_ROUTE", BarcodeRoutePath),
		RateLimitRPS:   getenvFloat("POS_RATE_LIMIT_RPS", 0),
		RateLimitBurst: getenvInt("POS_RATE_LIMIT_BURST", 1),
		MockAddr:       getenv("POS_MOCK_ADDR", ":8080"),
		MockSeed:       getenvBool("POS_MOCK_SEED", true),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:   getenvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTLPHeaders:    os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		ServiceName:    getenv("OTEL_SERVICE_NAME", "pos-facade"),
	}
	if cfg.BarcodeRoute != BarcodeRouteQuery {
		cfg.BarcodeRoute = BarcodeRoutePath
	}
	log.Printf("[config] APP_ENV=%s", cfg.AppEnv)
	log.Printf("[config] POS_API_BASEURL=%s timeout=%s", cfg.APIBaseURL, cfg.RequestTimeout)
	log.Printf("[config] verbose=%t mock_fallback=%t barcode_route=%s", cfg.Verbose, cfg.MockFallbackEnabled(), cfg.BarcodeRoute)
	return cfg
}

func (c Config) IsProduction() bool { return c.AppEnv == EnvProduction }

// MockFallbackEnabled is never true in production, whatever the flag says.
func (c Config) MockFallbackEnabled() bool { return c.MockFallback && !c.IsProduction() }
