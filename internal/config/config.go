package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is built once at startup
// and passed down explicitly.
type Config struct {
	DataSource struct {
		Provider string  `yaml:"provider" validate:"oneof=exchangerate yahoo mock"`
		BaseURL  string  `yaml:"base_url" validate:"omitempty,url"`
		APIKey   string  `yaml:"api_key"`
		Base     string  `yaml:"base" validate:"required,len=3,alpha"`
		Quote    string  `yaml:"quote" validate:"required,len=3,alpha"`
		MockRate float64 `yaml:"mock_rate" validate:"gte=0"`
	} `yaml:"data_source"`
	Mail struct {
		Enabled   bool   `yaml:"enabled"`
		Server    string `yaml:"server"`
		Port      int    `yaml:"port" validate:"min=1,max=65535"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		From      string `yaml:"from" validate:"omitempty,email"`
		Recipient string `yaml:"recipient" validate:"omitempty,email"`
	} `yaml:"mail"`
	Analysis struct {
		Points int `yaml:"points" validate:"min=10,max=200"`
	} `yaml:"analysis"`
	Schedule struct {
		Refresh    string `yaml:"refresh" validate:"required"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error err"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Defaults.
const (
	DefaultPoints   = 100
	DefaultRefresh  = "@every 1m"
	DefaultMailHost = "smtp.gmail.com"
	DefaultMailPort = 587
	DefaultAddr     = ":9090"
)

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Mail.Enabled = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := map[string]*string{
		"DATA_PROVIDER":    &c.DataSource.Provider,
		"API_URL":          &c.DataSource.BaseURL,
		"API_KEY":          &c.DataSource.APIKey,
		"BASE_CURRENCY":    &c.DataSource.Base,
		"QUOTE_CURRENCY":   &c.DataSource.Quote,
		"SMTP_SERVER":      &c.Mail.Server,
		"EMAIL_USERNAME":   &c.Mail.Username,
		"EMAIL_PASSWORD":   &c.Mail.Password,
		"EMAIL_FROM":       &c.Mail.From,
		"EMAIL_SUBSCRIBER": &c.Mail.Recipient,
		"REFRESH_CRON":     &c.Schedule.Refresh,
		"METRICS_ADDR":     &c.Server.Addr,
		"LOG_LEVEL":        &c.Log.Level,
		"HTTPS_PROXY":      &c.Proxy,
	}
	for key, dst := range setString {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT: %w", err)
		}
		c.Mail.Port = port
	}
	if v := os.Getenv("POINTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POINTS: %w", err)
		}
		c.Analysis.Points = n
	}
	if v := os.Getenv("MOCK_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MOCK_RATE: %w", err)
		}
		c.DataSource.MockRate = rate
	}

	bools := map[string]*bool{
		"EMAIL_ENABLED": &c.Mail.Enabled,
		"RUN_ON_START":  &c.Schedule.RunOnStart,
		"LOG_PRETTY":    &c.Log.Pretty,
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "exchangerate"
	}
	if c.DataSource.Base == "" {
		c.DataSource.Base = "EUR"
	}
	if c.DataSource.Quote == "" {
		c.DataSource.Quote = "USD"
	}
	c.DataSource.Base = strings.ToUpper(c.DataSource.Base)
	c.DataSource.Quote = strings.ToUpper(c.DataSource.Quote)
	if c.Mail.Server == "" {
		c.Mail.Server = DefaultMailHost
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = DefaultMailPort
	}
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	if c.Analysis.Points == 0 {
		c.Analysis.Points = DefaultPoints
	}
	if c.Schedule.Refresh == "" {
		c.Schedule.Refresh = DefaultRefresh
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

var validate = validator.New()

// Validate checks that all required fields are set and within bounds.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Mail.Enabled {
		var missing []string
		if c.Mail.Server == "" {
			missing = append(missing, "mail.server")
		}
		if c.Mail.Username == "" {
			missing = append(missing, "mail.username")
		}
		if c.Mail.Password == "" {
			missing = append(missing, "mail.password")
		}
		if c.Mail.Recipient == "" {
			missing = append(missing, "mail.recipient")
		}
		if len(missing) > 0 {
			return fmt.Errorf("invalid config: %s required when mail is enabled", strings.Join(missing, ", "))
		}
	}
	if c.DataSource.Provider == "mock" && c.DataSource.MockRate <= 0 {
		return errors.New("invalid config: data_source.mock_rate must be positive for the mock provider")
	}
	return nil
}

// Pair returns the configured pair in BASE/QUOTE form.
func (c *Config) Pair() string {
	return c.DataSource.Base + "/" + c.DataSource.Quote
}
