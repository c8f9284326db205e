package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	Auth Auth `yaml:"auth"`

	CORS CORS `yaml:"cors"`

	Loyalty Loyalty `yaml:"loyalty"`
}

type Server struct {
	Address string `yaml:"address"`
	Env     string `yaml:"env"`
}

// Production reports whether the server runs with production settings
// (Secure session cookies, release logging).
func (s Server) Production() bool {
	return s.Env == "production"
}

type Auth struct {
	Secret string `yaml:"secret"`
	// Session lifetimes in seconds. SessionTTL is the default; PersistTTL
	// applies when the caller asks to be remembered.
	SessionTTL int `yaml:"session_ttl"`
	PersistTTL int `yaml:"persist_ttl"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Loyalty struct {
	// Fallback points-per-dollar rate used when no setting record exists.
	// A pointer so an explicit 0 (loyalty disabled) survives defaulting.
	PointsPerDollar *float64 `yaml:"points_per_dollar"`
}

// Rate returns the configured fallback points-per-dollar rate.
func (l Loyalty) Rate() float64 {
	if l.PointsPerDollar == nil {
		return 1
	}
	return *l.PointsPerDollar
}

const (
	defaultSessionTTL = 86400   // one day
	defaultPersistTTL = 2592000 // thirty days
)

func Load() (*Config, error) {
	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret not configured (set AUTH_SECRET or auth.secret)")
	}

	return &cfg, nil
}

// applyEnvOverrides lets deployment environments override file values
// without editing the config on disk. Secrets in particular should come from
// the environment.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Address = ":" + v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			c.Auth.SessionTTL = ttl
		}
	}
	if v := os.Getenv("AUTH_PERSIST_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			c.Auth.PersistTTL = ttl
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("LOYALTY_POINTS_PER_DOLLAR"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
			c.Loyalty.PointsPerDollar = &rate
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":4000"
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = defaultSessionTTL
	}
	if c.Auth.PersistTTL <= 0 {
		c.Auth.PersistTTL = defaultPersistTTL
	}
	if c.Loyalty.PointsPerDollar != nil && *c.Loyalty.PointsPerDollar < 0 {
		c.Loyalty.PointsPerDollar = nil
	}
}
