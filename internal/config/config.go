package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Broker  string `mapstructure:"broker"`
	GroupID string `mapstructure:"group_id"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type AccrualConfig struct {
	Cron             string `mapstructure:"cron"`
	Timezone         string `mapstructure:"timezone"`
	Concurrency      int    `mapstructure:"concurrency"`
	SchedulerEnabled bool   `mapstructure:"scheduler_enabled"`
}

// Location resolves the accrual time zone, defaulting to UTC.
func (c AccrualConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type OutboxConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Accrual  AccrualConfig  `mapstructure:"accrual"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
}

// envBindings maps config keys to the environment variables that feed them.
var envBindings = map[string]string{
	"app.env":                   "APP_ENV",
	"app.port":                  "PORT",
	"database.host":             "DB_HOST",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.name":             "DB_NAME",
	"database.port":             "DB_PORT",
	"database.sslmode":          "DB_SSLMODE",
	"redis.addr":                "REDIS_ADDR",
	"kafka.broker":              "KAFKA_BROKER",
	"kafka.group_id":            "KAFKA_GROUP_ID",
	"jwt.secret":                "JWT_SECRET",
	"accrual.cron":              "ACCRUAL_CRON",
	"accrual.timezone":          "ACCRUAL_TIMEZONE",
	"accrual.concurrency":       "ACCRUAL_CONCURRENCY",
	"accrual.scheduler_enabled": "SCHEDULER_ENABLED",
	"outbox.poll_interval":      "OUTBOX_POLL_INTERVAL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.group_id", "go-payroll-ledger")
	v.SetDefault("accrual.cron", "0 0 * * *")
	v.SetDefault("accrual.timezone", "UTC")
	v.SetDefault("accrual.concurrency", 4)
	v.SetDefault("accrual.scheduler_enabled", true)
	v.SetDefault("outbox.poll_interval", 3*time.Second)
}

// Load reads the configuration from the environment. Call godotenv.Load
// first when a .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if c.Accrual.Concurrency < 1 {
		c.Accrual.Concurrency = 1
	}
	if _, err := c.Accrual.Location(); err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_TIMEZONE %q: %w", c.Accrual.Timezone, err)
	}

	return &c, nil
}
