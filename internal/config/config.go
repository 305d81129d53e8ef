// Package config builds the process-wide configuration once at startup.
//
// Precedence: built-in defaults, then configs/config.yml, then environment.
// A local .env file, when present, is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretLen = 16
	envPrefix    = "ACME"
)

type Config struct {
	Port      string
	GinMode   string
	DB        DBConfig
	Auth      AuthConfig
	Log       LogConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
}

type DBConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the connection's remote address.
	TrustedProxies []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	// AuthPerMinute caps login/register attempts per client IP; 0 disables the limiter.
	AuthPerMinute int
}

type CatalogConfig struct {
	SeedItems []SeedItem
}

type SeedItem struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// Load reads configuration from the YAML file at path. A missing file is not
// an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	cfg := &Config{
		Port:    v.GetString("port"),
		GinMode: v.GetString("gin_mode"),
		DB: DBConfig{
			Driver:       strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			DSN:          v.GetString("db.dsn"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Path:       v.GetString("log.path"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout: v.GetDuration("http.read_header_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: v.GetInt("rate_limit.auth_per_minute"),
		},
	}
	if err := v.UnmarshalKey("catalog.seed_items", &cfg.Catalog.SeedItems); err != nil {
		return nil, fmt.Errorf("decode catalog.seed_items: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "acme_reviews.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.trusted_proxies", []string{})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.auth_per_minute", 30)
}

// bindLegacyEnv keeps the plain variable names used by existing deployments.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")
	_ = v.BindEnv("db.dsn", envPrefix+"_DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", envPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET", "JWT")
}

// Validate checks invariants that the rest of the process relies on.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("db.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DB.Driver)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin_mode must be debug, release or test, got %q", c.GinMode)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required")
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d bytes (set JWT_SECRET)", minSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}
	for _, p := range c.HTTP.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("http.trusted_proxies: %q is not an IP or CIDR", p)
		}
	}
	if c.RateLimit.AuthPerMinute < 0 {
		return errors.New("rate_limit.auth_per_minute must not be negative")
	}
	return nil
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, _, err := net.ParseCIDR(p)
		return err == nil
	}
	return net.ParseIP(p) != nil
}

// LogFields returns loggable key/value pairs. The signing secret and DSN are omitted.
func (c *Config) LogFields() []any {
	return []any{
		"port", c.Port,
		"db_driver", c.DB.Driver,
		"token_ttl", c.Auth.TokenTTL.String(),
		"log_level", c.Log.Level,
		"log_to_file", c.Log.Path != "",
		"cors_origins", c.CORS.AllowedOrigins,
		"auth_rate_limit_per_minute", c.RateLimit.AuthPerMinute,
		"trusted_proxies", c.HTTP.TrustedProxies,
	}
}
