package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Filter   FilterConfig   `koanf:"filter"`
	Queue    QueueConfig    `koanf:"queue"`
	Storage  StorageConfig  `koanf:"storage"`
	Redis    RedisConfig    `koanf:"redis"`
	Notifier NotifierConfig `koanf:"notifier"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type FilterConfig struct {
	// ChatExpression gates which chats are classified at all.
	ChatExpression string `koanf:"chat_expression"`
	// MaxDistance is the self-reference edit-distance threshold.
	MaxDistance int `koanf:"max_distance"`
	// Verbose sends block diagnostics to the user-visible level and enables
	// suppression notifications.
	Verbose bool `koanf:"verbose"`
	// OrderOverride is the sort key substituted for chats whose last message
	// was suppressed by this filter. Empty leaves ordering untouched.
	OrderOverride string `koanf:"order_override"`
	// AllowKnownChatLinks is declared but not consumed by the classifier.
	AllowKnownChatLinks bool `koanf:"allow_known_chat_links"`
}

type QueueConfig struct {
	Brokers         []string `koanf:"brokers"`
	Topic           string   `koanf:"topic"`
	GroupID         string   `koanf:"group_id"`
	SuppressedTopic string   `koanf:"suppressed_topic"`
}

type StorageConfig struct {
	DSN string `koanf:"dsn"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
}

type NotifierConfig struct {
	TelegramToken   string   `koanf:"telegram_token"`
	TelegramChatIDs []string `koanf:"telegram_chat_ids"`
}

const (
	defaultMaxDistance    = 4
	defaultChatExpression = "channel && !verified"
)

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}

	// ADFILTER_FILTER_MAX_DISTANCE=6 overrides filter.max_distance.
	if err := k.Load(env.Provider("ADFILTER_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "ADFILTER_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, err
	}

	cfg := &Config{Filter: FilterConfig{AllowKnownChatLinks: true}}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Filter.MaxDistance <= 0 {
		cfg.Filter.MaxDistance = defaultMaxDistance
	}
	if cfg.Filter.ChatExpression == "" {
		cfg.Filter.ChatExpression = defaultChatExpression
	}
}
