package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AMQP     AMQPConfig     `yaml:"amqp"`
	Mail     MailConfig     `yaml:"mail"`
	Layout   LayoutConfig   `yaml:"layout"`
	Stats    StatsConfig    `yaml:"stats"`
	Timezone string         `yaml:"timezone"`
}

type HTTPConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
}

// DatabaseConfig: URL vazia usa o store em memória.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig: Addr vazio usa o store de layout em memória.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AMQPConfig: URL vazia desliga eventos e notificações.
type AMQPConfig struct {
	URL string `yaml:"url"`
}

type MailConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	User     string   `yaml:"user"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	NotifyTo []string `yaml:"notify_to"`
}

type LayoutConfig struct {
	Operator string `yaml:"operator"`
}

type StatsConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location resolve o fuso usado nas exportações.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load lê o YAML opcional em path (vazio = só defaults).
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config inválida em %s: %w", path, err)
		}
	}
	cfg.setDefaults()
	return &cfg, nil
}

// LoadFromEnv carrega .env, o YAML de CONFIG_FILE e aplica as variáveis
// de ambiente por cima.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = "production"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if len(c.HTTP.CORSAllowedOrigins) == 0 {
		c.HTTP.CORSAllowedOrigins = []string{"*"}
	}
	if c.HTTP.RateLimitPerMinute == 0 {
		c.HTTP.RateLimitPerMinute = 10
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.From == "" {
		c.Mail.From = "nao-responda@l0gic.com.br"
	}
	if c.Layout.Operator == "" {
		c.Layout.Operator = "alexandre mendes"
	}
	if c.Stats.Interval == 0 {
		c.Stats.Interval = time.Minute
	}
	if c.Timezone == "" {
		c.Timezone = "America/Sao_Paulo"
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setList(&c.HTTP.CORSAllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.Mail.Host, "MAIL_HOST")
	setString(&c.Mail.User, "MAIL_USER")
	setString(&c.Mail.Password, "MAIL_PASS")
	setString(&c.Mail.From, "MAIL_FROM")
	setList(&c.Mail.NotifyTo, "NOTIFY_TO")
	setString(&c.Layout.Operator, "LAYOUT_OPERATOR")
	setString(&c.Timezone, "TIMEZONE")

	if err := setInt(&c.HTTP.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE"); err != nil {
		return err
	}
	if err := setInt(&c.Mail.Port, "MAIL_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if v := os.Getenv("STATS_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STATS_INTERVAL inválido: %w", err)
		}
		c.Stats.Interval = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s inválido: %w", key, err)
	}
	*dst = n
	return nil
}
