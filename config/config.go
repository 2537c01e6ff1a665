// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Learning  LearningConfig  `yaml:"learning"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // postgres | sqlite
	DSN          string `yaml:"dsn"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionSecret string        `yaml:"session_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	RememberTTL   time.Duration `yaml:"remember_ttl"` // "beni hatırla" ile açılan oturumlar
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"` // boşsa bellek içi önbellek
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	UserTTL  time.Duration `yaml:"user_ttl"`
}

type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	StreakResetAt string `yaml:"streak_reset_at"` // HH:MM, UTC
}

type LearningConfig struct {
	DailyXPGoal int `yaml:"daily_xp_goal"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":3001",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:8080", "http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "hausa.db",
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Name:         "hausa",
			MaxOpenConns: 25,
		},
		Auth: AuthConfig{
			TokenTTL:    24 * time.Hour,
			RememberTTL: 30 * 24 * time.Hour,
		},
		Redis: RedisConfig{
			UserTTL: 10 * time.Minute,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			StreakResetAt: "00:05",
		},
		Learning: LearningConfig{
			DailyXPGoal: 50,
		},
	}
}

// Load sırasıyla varsayılanları, YAML dosyasını (varsa) ve ortam değişkenlerini uygular.
func Load(path string) (*Config, error) {
	// .env yoksa sorun değil
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config dosyası okunamadı: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config dosyası çözümlenemedi: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SessionSecret = getEnv("SESSION_SECRET", c.Auth.SessionSecret)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Scheduler.StreakResetAt = getEnv("STREAK_RESET_AT", c.Scheduler.StreakResetAt)

	var err error
	if c.Server.ReadTimeout, err = getDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout); err != nil {
		return err
	}
	if c.Auth.TokenTTL, err = getDuration("TOKEN_TTL", c.Auth.TokenTTL); err != nil {
		return err
	}
	if c.Auth.RememberTTL, err = getDuration("REMEMBER_TTL", c.Auth.RememberTTL); err != nil {
		return err
	}
	if c.Redis.UserTTL, err = getDuration("USER_CACHE_TTL", c.Redis.UserTTL); err != nil {
		return err
	}
	if c.Database.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns); err != nil {
		return err
	}
	if c.Redis.DB, err = getInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.Learning.DailyXPGoal, err = getInt("DAILY_XP_GOAL", c.Learning.DailyXPGoal); err != nil {
		return err
	}
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SCHEDULER_ENABLED: %w", err)
		}
		c.Scheduler.Enabled = enabled
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("desteklenmeyen DB_DRIVER: %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET tanımlı değil")
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("SESSION_SECRET tanımlı değil")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL pozitif olmalı")
	}
	if c.Learning.DailyXPGoal <= 0 {
		return errors.New("DAILY_XP_GOAL pozitif olmalı")
	}
	if _, err := time.Parse("15:04", c.Scheduler.StreakResetAt); err != nil {
		return fmt.Errorf("STREAK_RESET_AT HH:MM biçiminde olmalı: %w", err)
	}
	return nil
}

// DataSourceName sürücüye uygun bağlantı dizesini üretir.
func (d DatabaseConfig) DataSourceName() string {
	if d.Driver == "postgres" && (d.DSN == "" || d.DSN == Default().Database.DSN) {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.User, d.Password, d.Name,
		)
	}
	return d.DSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
