package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/DIMO-Network/shared/pkg/db"
)

// Store backends for the notified-sender table.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const (
	defaultPort                 = 5000
	defaultMonPort              = 8888
	defaultGraphAPIURL          = "https://graph.facebook.com/v17.0"
	defaultGraphAPITimeout      = 10 * time.Second
	defaultMaintenanceDuration  = 12 * time.Hour
	defaultReplyPolicy          = "C"
	defaultContactTitle         = "Contact me"
	defaultContactPrompt        = "Need help in the meantime?"
	defaultBroadcastPageLimit   = 100
	defaultBroadcastMaxPages    = 10
	defaultBroadcastConcurrency = 4
	defaultBroadcastRate        = 10
	defaultRedisKey             = "maintenance-bot:notified"

	defaultLongNotice = `🚨 Important update! 🚨

The bot is paused for maintenance while we roll out a new feature.

⏳ Expected downtime: about 12 hours.
🔧 The bot will not answer during this window, but it will be back soon with improvements.

🙏 Thank you for your patience!
👉 For any question, use the button below to reach us.`

	defaultShortNotice = "🔧 The bot is paused for maintenance. It will be back in about 12 hours."
)

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT"`
	MonPort     int    `env:"MON_PORT"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME"`

	PageAccessToken string        `env:"PAGE_ACCESS_TOKEN"`
	VerifyToken     string        `env:"VERIFY_TOKEN"`
	AppSecret       string        `env:"APP_SECRET"`
	AdminToken      string        `env:"ADMIN_TOKEN"`
	PageID          string        `env:"PAGE_ID"`
	GraphAPIURL     string        `env:"GRAPH_API_URL"`
	GraphAPITimeout time.Duration `env:"GRAPH_API_TIMEOUT"`

	ReplyPolicy         string        `env:"REPLY_POLICY"`
	LongNotice          string        `env:"LONG_NOTICE"`
	ShortNotice         string        `env:"SHORT_NOTICE"`
	ContactURL          string        `env:"CONTACT_URL"`
	ContactTitle        string        `env:"CONTACT_TITLE"`
	ContactPrompt       string        `env:"CONTACT_PROMPT"`
	MaintenanceDuration time.Duration `env:"MAINTENANCE_DURATION"`

	BroadcastPageLimit   int     `env:"BROADCAST_PAGE_LIMIT"`
	BroadcastMaxPages    int     `env:"BROADCAST_MAX_PAGES"`
	BroadcastConcurrency int     `env:"BROADCAST_CONCURRENCY"`
	BroadcastRatePerSec  float64 `env:"BROADCAST_RATE_PER_SEC"`

	NotifiedStore string `env:"NOTIFIED_STORE"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisKey      string `env:"REDIS_KEY"`

	DB db.Settings `envPrefix:"DB_"`
}

// ApplyDefaults fills every unset optional value.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.MonPort == 0 {
		s.MonPort = defaultMonPort
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.ServiceName == "" {
		s.ServiceName = "messenger-maintenance-bot"
	}
	if s.GraphAPIURL == "" {
		s.GraphAPIURL = defaultGraphAPIURL
	}
	if s.GraphAPITimeout == 0 {
		s.GraphAPITimeout = defaultGraphAPITimeout
	}
	if s.ReplyPolicy == "" {
		s.ReplyPolicy = defaultReplyPolicy
	}
	if s.LongNotice == "" {
		s.LongNotice = defaultLongNotice
	}
	if s.ShortNotice == "" {
		s.ShortNotice = defaultShortNotice
	}
	if s.ContactTitle == "" {
		s.ContactTitle = defaultContactTitle
	}
	if s.ContactPrompt == "" {
		s.ContactPrompt = defaultContactPrompt
	}
	if s.MaintenanceDuration == 0 {
		s.MaintenanceDuration = defaultMaintenanceDuration
	}
	if s.BroadcastPageLimit == 0 {
		s.BroadcastPageLimit = defaultBroadcastPageLimit
	}
	if s.BroadcastMaxPages == 0 {
		s.BroadcastMaxPages = defaultBroadcastMaxPages
	}
	if s.BroadcastConcurrency == 0 {
		s.BroadcastConcurrency = defaultBroadcastConcurrency
	}
	if s.BroadcastRatePerSec == 0 {
		s.BroadcastRatePerSec = defaultBroadcastRate
	}
	if s.NotifiedStore == "" {
		s.NotifiedStore = StoreMemory
	}
	if s.RedisKey == "" {
		s.RedisKey = defaultRedisKey
	}
}

// Validate reports every configuration problem that would prevent startup.
// VERIFY_TOKEN has no built-in default and must always be set.
func (s *Settings) Validate() error {
	var errs []error
	if s.VerifyToken == "" {
		errs = append(errs, errors.New("VERIFY_TOKEN is required"))
	}
	switch s.ReplyPolicy {
	case "A", "B", "C", "D":
	default:
		errs = append(errs, fmt.Errorf("unknown REPLY_POLICY %q", s.ReplyPolicy))
	}
	switch s.NotifiedStore {
	case StoreMemory, StorePostgres:
	case StoreRedis:
		if s.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFIED_STORE %q", s.NotifiedStore))
	}
	if s.BroadcastConcurrency < 0 || s.BroadcastPageLimit < 0 || s.BroadcastMaxPages < 0 || s.BroadcastRatePerSec < 0 {
		errs = append(errs, errors.New("broadcast limits must not be negative"))
	}
	return errors.Join(errs...)
}
