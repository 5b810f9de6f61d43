// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is shared by the api server and the terminal client. Values are
// layered: built-in defaults, then the optional YAML file, then environment.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Payment   PaymentConfig   `koanf:"payment"`
	Storage   StorageConfig   `koanf:"storage"`
	Events    EventsConfig    `koanf:"events"`
	Library   LibraryConfig   `koanf:"library"`
	Client    ClientConfig    `koanf:"client"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath    string        `koanf:"private_key_path"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// PaymentConfig holds the Razorpay credentials. KeyID is handed to the checkout,
// KeySecret never leaves the backend.
type PaymentConfig struct {
	KeyID       string        `koanf:"key_id"`
	KeySecret   string        `koanf:"key_secret"`
	Currency    string        `koanf:"currency"`
	OrderTTL    time.Duration `koanf:"order_ttl"`
	MerchantTag string        `koanf:"merchant_name"`
	ThemeColor  string        `koanf:"theme_color"`
}

type StorageConfig struct {
	Driver      string `koanf:"driver"`
	LocalDir    string `koanf:"local_dir"`
	PublicURL   string `koanf:"public_url"`
	S3Bucket    string `koanf:"s3_bucket"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3Region    string `koanf:"s3_region"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
}

type EventsConfig struct {
	Enabled  bool   `koanf:"enabled"`
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

type LibraryConfig struct {
	TrialPeriod        time.Duration `koanf:"trial_period"`
	SubscriptionPeriod time.Duration `koanf:"subscription_period"`
}

type ClientConfig struct {
	APIURL         string        `koanf:"api_url"`
	SessionStore   string        `koanf:"session_store"`
	SessionFile    string        `koanf:"session_file"`
	RedisPrefix    string        `koanf:"redis_prefix"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	MinimalStart   bool          `koanf:"minimal_start"`
}

// Load builds the configuration. configPath may be empty.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	layers := []struct {
		name     string
		provider koanf.Provider
		parser   koanf.Parser
		skip     bool
	}{
		{name: "defaults", provider: defaults},
		{name: "config file", provider: file.Provider(configPath), parser: yaml.Parser(), skip: configPath == ""},
		{name: "env vars", provider: env.Provider("", ".", envKey)},
	}
	for _, l := range layers {
		if l.skip {
			continue
		}
		if err := k.Load(l.provider, l.parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validateCommon(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool  { return c.App.Environment == "production" }
func (c *Config) IsDevelopment() bool { return c.App.Environment == "development" }

func (s *ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
