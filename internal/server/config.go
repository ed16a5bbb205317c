// Package server provides configuration helpers that define runtime defaults,
// validation, and room options for the chatroom service.
package server

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/Tyrowin/chatroom/internal/chat"
)

var validate = validator.New()

const (
	defaultPort            = ":8080"
	defaultMaxMessageSize  = 4096
	defaultSendBufferSize  = 256
	defaultEventBufferSize = 1024
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the server configuration settings including security controls.
type Config struct {
	Port              string        `envconfig:"SERVER_PORT" default:":8080" validate:"required"`
	AllowedOrigins    []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080" validate:"dive,required"`
	MaxMessageSize    int64         `envconfig:"MAX_MESSAGE_SIZE" default:"4096" validate:"gt=0"`
	SendBufferSize    int           `envconfig:"SEND_BUFFER_SIZE" default:"256" validate:"gt=0"`
	EventBufferSize   int           `envconfig:"EVENT_BUFFER_SIZE" default:"1024" validate:"gt=0"`
	RejectionNotices  bool          `envconfig:"JOIN_REJECTION_NOTICES" default:"false"`
	StrictIdentity    bool          `envconfig:"STRICT_IDENTITY" default:"false"`
	JWTSecret         string        `envconfig:"JWT_SECRET" validate:"required_if=StrictIdentity true"`
	NATSURL           string        `envconfig:"NATS_URL" validate:"omitempty,url"`
	NATSSubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"chatroom" validate:"required"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error dpanic panic fatal"`
	LogFormat         string        `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

func defaultConfig() Config {
	return Config{
		Port: defaultPort,
		AllowedOrigins: []string{
			"http://localhost:8080",
		},
		MaxMessageSize:    defaultMaxMessageSize,
		SendBufferSize:    defaultSendBufferSize,
		EventBufferSize:   defaultEventBufferSize,
		NATSSubjectPrefix: "chatroom",
		LogLevel:          "info",
		LogFormat:         "console",
		ShutdownTimeout:   defaultShutdownTimeout,
	}
}

// sanitizeConfig replaces unusable values with defaults.
func sanitizeConfig(cfg Config) Config {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}

	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = defaultSendBufferSize
	}

	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = defaultEventBufferSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.NATSSubjectPrefix == "" {
		cfg.NATSSubjectPrefix = "chatroom"
	}

	cfg.AllowedOrigins = append([]string(nil), cfg.AllowedOrigins...)
	return cfg
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}

// NewConfigFromEnv creates a Config from environment variables, using the
// defaults for anything unset. Values that do not parse are an error.
func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	cfg = sanitizeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that sanitizing cannot repair, such as an unknown
// log format or a malformed NATS URL.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RoomOptions derives the room settings from the configuration.
func (c Config) RoomOptions() chat.Options {
	return chat.Options{
		EventBuffer:      c.EventBufferSize,
		RejectionNotices: c.RejectionNotices,
		StrictIdentity:   c.StrictIdentity,
	}
}
