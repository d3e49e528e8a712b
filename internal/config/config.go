package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	LogFolder     string
	WebhookToken  string
	AppsScriptURL string
	NatsURL       string
	NatsToken     string
	NatsSubject   string
	LogLevel      string
	LogFile       string
	RunInterval   time.Duration
	SessionGap    time.Duration
	QuietPeriod   time.Duration
	SinkTimeout   time.Duration
	BotSender     string
	MarkerPhrase  string
}

func Load() Config {
	return Config{
		Port:          envInt("JOURNEYD_PORT", 8760),
		LogFolder:     envStr("LOG_FOLDER", "logs"),
		WebhookToken:  envStr("WATI_WEBHOOK_TOKEN", ""),
		AppsScriptURL: envStr("APPS_SCRIPT_URL", ""),
		NatsURL:       envStr("NATS_URL", ""),
		NatsToken:     envStr("NATS_TOKEN", ""),
		NatsSubject:   envStr("NATS_SUBJECT", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		LogFile:       envStr("LOG_FILE", ""),
		RunInterval:   envSeconds("RUN_INTERVAL_SECONDS", 300),
		SessionGap:    envSeconds("SESSION_GAP_SECONDS", 600),
		QuietPeriod:   envSeconds("QUIET_PERIOD_SECONDS", 420),
		SinkTimeout:   envSeconds("SINK_TIMEOUT_SECONDS", 15),
		BotSender:     envStr("BOT_SENDER", "Bot"),
		MarkerPhrase:  envStr("MENU_PROMPT", "how can we assist you today"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}
