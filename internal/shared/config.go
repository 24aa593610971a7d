package shared

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// BookingManager (XML vendor)
	BMBase string
	BMKey  string
	BMUser string
	BMRPS  int

	// Mews (JSON vendor)
	MewsBase          string
	MewsClientToken   string
	MewsAccessToken   string
	MewsClientName    string
	MewsWebhookSecret string
	MewsRPS           int

	Workers int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		BMBase: env("BM_BASE_URL", "https://api.bookingmanager.example/v2"),
		BMKey:  env("BM_API_KEY", ""),
		BMUser: env("BM_USERNAME", ""),
		BMRPS:  atoi("BM_RPS", 5),

		MewsBase:          env("MEWS_BASE_URL", "https://api.mews.com"),
		MewsClientToken:   env("MEWS_CLIENT_TOKEN", ""),
		MewsAccessToken:   env("MEWS_ACCESS_TOKEN", ""),
		MewsClientName:    env("MEWS_CLIENT_NAME", "pmsbridge 1.0"),
		MewsWebhookSecret: env("MEWS_WEBHOOK_SECRET", ""),
		MewsRPS:           atoi("MEWS_RPS", 10),

		Workers: atoi("SYNC_WORKERS", 8),
	}
	if c.BMKey == "" {
		log.Warn().Msg("BM_API_KEY is empty")
	}
	if c.MewsAccessToken == "" {
		log.Warn().Msg("MEWS_ACCESS_TOKEN is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
