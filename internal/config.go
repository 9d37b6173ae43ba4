package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"http_server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Allowance   AllowanceConfig  `mapstructure:"allowance"`
	DocService  DocServiceConfig `mapstructure:"doc_service"`
	Mail        MailConfig       `mapstructure:"mail"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// AllowanceConfig carries the current per-day funding rates. The rates are
// loaded once at startup and passed explicitly into the funding-default
// computation; there is no mutable settings row in the database.
type AllowanceConfig struct {
	DailyAllowance int64 `mapstructure:"daily_allowance"`
	HotelRate      int64 `mapstructure:"hotel_rate"`
}

func (c AllowanceConfig) DailyAllowanceDecimal() decimal.Decimal {
	return decimal.NewFromInt(c.DailyAllowance)
}

func (c AllowanceConfig) HotelRateDecimal() decimal.Decimal {
	return decimal.NewFromInt(c.HotelRate)
}

// DocServiceConfig points at the external document-template and mail service.
type DocServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	SenderName string `mapstructure:"sender_name"`
	Subject    string `mapstructure:"subject"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config from environment variables, used for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("HTTP_BASE_URL", ""),
			AllowedOrigins:    getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Allowance: AllowanceConfig{
			DailyAllowance: int64(getEnvAsInt("ALLOWANCE_DAILY", 200)),
			HotelRate:      int64(getEnvAsInt("ALLOWANCE_HOTEL_RATE", 400)),
		},
		DocService: DocServiceConfig{
			BaseURL: getEnv("DOC_SERVICE_URL", ""),
			Timeout: 15 * time.Second,
		},
		Mail: MailConfig{
			SenderName: getEnv("MAIL_SENDER_NAME", "noreply"),
			Subject:    getEnv("MAIL_SUBJECT", "Заявка на командировку"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Allowance.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("allowance config: %v", err))
	}

	if err := c.DocService.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("doc service config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *AllowanceConfig) Validate() error {
	if c.DailyAllowance <= 0 {
		return errors.New("daily_allowance must be positive")
	}
	if c.HotelRate <= 0 {
		return errors.New("hotel_rate must be positive")
	}
	return nil
}

func (c *DocServiceConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	return nil
}
