package config

import (
	"log/slog"
	"net/netip"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/roadrunner-server/errors"
	"gopkg.in/yaml.v3"
)

const DefaultListenAddr = "0.0.0.0:2525"

// DotEnvFile is read from the working directory when present. Process
// environment variables take precedence over its values.
var DotEnvFile = ".env"

// Config holds everything the decoy needs before it starts listening.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// SMTP AUTH LOGIN credentials the camera is configured with
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	WebhookURL string `yaml:"webhook_url"`
	WebhookKey string `yaml:"webhook_key"`

	// Optional restrictions, empty means accept all
	AlarmSubject string `yaml:"alarm_subject"`
	AlarmIP      string `yaml:"alarm_ip"`

	// AllowedAddr is AlarmIP parsed by Validate, invalid when unset
	AllowedAddr netip.Addr `yaml:"-"`

	LogLevel string `yaml:"log_level"`
	LokiURL  string `yaml:"loki_url"`
}

var envKeys = map[string]func(c *Config) *string{
	"CCTV_LISTEN_ADDR":   func(c *Config) *string { return &c.ListenAddr },
	"CCTV_USERNAME":      func(c *Config) *string { return &c.Username },
	"CCTV_PASSWORD":      func(c *Config) *string { return &c.Password },
	"CCTV_WEBHOOK_URL":   func(c *Config) *string { return &c.WebhookURL },
	"CCTV_WEBHOOK_KEY":   func(c *Config) *string { return &c.WebhookKey },
	"CCTV_ALARM_SUBJECT": func(c *Config) *string { return &c.AlarmSubject },
	"CCTV_ALARM_IP":      func(c *Config) *string { return &c.AlarmIP },
	"CCTV_LOG_LEVEL":     func(c *Config) *string { return &c.LogLevel },
	"CCTV_LOKI_URL":      func(c *Config) *string { return &c.LokiURL },
}

// Load reads the optional YAML file at path, then applies the .env file and
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	const op = errors.Op("config_load")

	c := &Config{}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, errors.E(op, err)
		}
		c = fc
	}

	dotenv, err := readDotEnv(DotEnvFile)
	if err != nil {
		return nil, errors.E(op, err)
	}

	c.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	if err := c.Validate(); err != nil {
		return nil, errors.E(op, err)
	}

	return c, nil
}

func LoadFile(path string) (*Config, error) {
	const op = errors.Op("config_load_file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.E(op, errors.Errorf("invalid config file %s: %v", path, err))
	}

	return c, nil
}

func readDotEnv(path string) (map[string]string, error) {
	const op = errors.Op("config_read_dotenv")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.E(op, errors.Errorf("invalid env file %s: %v", path, err))
	}
	return values, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for key, field := range envKeys {
		if v, ok := lookup(key); ok {
			*field(c) = v
		}
	}
}

// Validate checks required values and fills defaults.
func (c *Config) Validate() error {
	const op = errors.Op("config_validate")

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	required := []struct {
		name  string
		value string
	}{
		{"CCTV_USERNAME", c.Username},
		{"CCTV_PASSWORD", c.Password},
		{"CCTV_WEBHOOK_URL", c.WebhookURL},
		{"CCTV_WEBHOOK_KEY", c.WebhookKey},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.E(op, errors.Errorf("missing %s", r.name))
		}
	}

	addr, err := parseAlarmIP(c.AlarmIP)
	if err != nil {
		return errors.E(op, err)
	}
	c.AllowedAddr = addr

	return nil
}

// parseAlarmIP returns the zero Addr for an empty value.
func parseAlarmIP(value string) (netip.Addr, error) {
	if strings.TrimSpace(value) == "" {
		return netip.Addr{}, nil
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(value))
	if err != nil {
		return netip.Addr{}, errors.Errorf("invalid CCTV_ALARM_IP %q: %v", value, err)
	}
	return addr, nil
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
