package dispatch

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prilive-com/routego/tg"
)

// Granularity selects which parts of an update identify it to the spam gate.
type Granularity int

const (
	// GranularitySender fingerprints by sender only: any two updates from
	// the same user within the TTL window count as a burst.
	GranularitySender Granularity = iota

	// GranularityChat fingerprints by sender, chat, and update kind.
	GranularityChat

	// GranularityContent fingerprints by sender, chat, update kind, and a
	// hash of the content (message text, callback payload, or query text).
	// Repeating the same action is a burst; different actions are not.
	GranularityContent
)

// String returns the granularity name as used in configuration.
func (g Granularity) String() string {
	switch g {
	case GranularitySender:
		return "sender"
	case GranularityChat:
		return "chat"
	case GranularityContent:
		return "content"
	default:
		return "unknown"
	}
}

// Config holds dispatcher configuration.
type Config struct {
	// Spam gate
	SpamTTL         time.Duration // window after which a fingerprint is forgotten
	SpamMaxEntries  int           // eviction threshold for the fingerprint cache
	SpamGranularity Granularity   // fingerprint granularity
	SpamDisabled    bool          // bypass the gate entirely

	// PoolSize bounds concurrent handler invocations. Zero means one
	// goroutine per update with no bound; positive values create a sized
	// pool where a full pool blocks intake (backpressure).
	PoolSize int
}

// Validate checks the configuration for values New cannot work with.
func (c Config) Validate() error {
	if !c.SpamDisabled {
		if c.SpamTTL <= 0 {
			return tg.NewValidationError("spam_ttl", "must be positive")
		}
		if c.SpamMaxEntries <= 0 {
			return tg.NewValidationError("spam_max_entries", "must be positive")
		}
		if c.SpamGranularity < GranularitySender || c.SpamGranularity > GranularityContent {
			return tg.NewValidationError("spam_granularity", "unknown granularity")
		}
	}
	if c.PoolSize < 0 {
		return tg.NewValidationError("pool_size", "must be zero or positive")
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpamTTL:         600 * time.Millisecond,
		SpamMaxEntries:  500,
		SpamGranularity: GranularityContent,
		PoolSize:        0,
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if d, err := time.ParseDuration(getEnv("SPAM_TTL", "600ms")); err == nil {
		cfg.SpamTTL = d
	}

	if i, err := strconv.Atoi(getEnv("SPAM_MAX_ENTRIES", "500")); err == nil {
		if i <= 0 {
			return nil, tg.NewValidationError("SPAM_MAX_ENTRIES", "must be positive")
		}
		cfg.SpamMaxEntries = i
	}

	switch strings.ToLower(getEnv("SPAM_FINGERPRINT", "content")) {
	case "sender":
		cfg.SpamGranularity = GranularitySender
	case "chat":
		cfg.SpamGranularity = GranularityChat
	case "content":
		cfg.SpamGranularity = GranularityContent
	case "off":
		cfg.SpamDisabled = true
	default:
		return nil, tg.NewValidationError("SPAM_FINGERPRINT", "must be 'sender', 'chat', 'content', or 'off'")
	}

	if i, err := strconv.Atoi(getEnv("DISPATCH_POOL_SIZE", "0")); err == nil {
		if i < 0 {
			return nil, tg.NewValidationError("DISPATCH_POOL_SIZE", "must be zero or positive")
		}
		cfg.PoolSize = i
	}

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
