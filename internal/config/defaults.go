// AngelaMos | 2026
// defaults.go

package config

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// flatMap is a koanf provider over dotted keys.
type flatMap map[string]any

func (m flatMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("flatMap provider does not support ReadBytes")
}

func (m flatMap) Read() (map[string]any, error) {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return maps.Unflatten(cp, "."), nil
}

var defaults = flatMap{
	"app.name":        "Mines and Minerals Laws Ecosystem",
	"app.version":     "1.0.0",
	"app.environment": "development",

	"server.host":             "0.0.0.0",
	"server.port":             3000,
	"server.read_timeout":     "30s",
	"server.write_timeout":    "30s",
	"server.idle_timeout":     "120s",
	"server.shutdown_timeout": "15s",
	"server.max_upload_bytes": 20 << 20,

	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  "1h",
	"database.conn_max_idle_time": "30m",
	"database.auto_migrate":       true,

	"redis.pool_size":      10,
	"redis.min_idle_conns": 5,

	"jwt.access_token_expire": "24h",
	"jwt.issuer":              "mmle-api",
	"jwt.audience":            "mmle-clients",
	"jwt.private_key_path":    "keys/private.pem",

	"rate_limit.requests": 100,
	"rate_limit.window":   "1m",
	"rate_limit.burst":    20,

	"cors.allowed_origins":   []string{"http://localhost:5173"},
	"cors.allowed_methods":   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"cors.allowed_headers":   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	"cors.allow_credentials": true,
	"cors.max_age":           300,

	"log.level":  "info",
	"log.format": "json",

	"otel.enabled":      false,
	"otel.insecure":     true,
	"otel.sample_rate":  0.1,
	"otel.service_name": "mmle",

	"payment.currency":      "INR",
	"payment.order_ttl":     "30m",
	"payment.merchant_name": "Mines and Minerals Laws",
	"payment.theme_color":   "#1a3b5d",

	"storage.driver":     "local",
	"storage.local_dir":  "uploads",
	"storage.public_url": "http://localhost:3000/files",

	"events.enabled":  false,
	"events.exchange": "mmle.events",

	"library.trial_period":        "168h",
	"library.subscription_period": "8760h",

	"client.api_url":         "http://localhost:3000",
	"client.session_store":   "file",
	"client.redis_prefix":    "mmle:session:",
	"client.request_timeout": "30s",
	"client.minimal_start":   false,
}

// envKeys maps the recognised environment variables onto config keys. Any
// other variable is ignored.
var envKeys = map[string]string{
	"ENVIRONMENT": "app.environment",
	"HOST":        "server.host",
	"PORT":        "server.port",
	"LOG_LEVEL":   "log.level",
	"LOG_FORMAT":  "log.format",

	"DATABASE_URL":          "database.url",
	"DATABASE_AUTO_MIGRATE": "database.auto_migrate",
	"REDIS_URL":             "redis.url",

	"JWT_PRIVATE_KEY_PATH":    "jwt.private_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE": "jwt.access_token_expire",
	"JWT_ISSUER":              "jwt.issuer",
	"JWT_AUDIENCE":            "jwt.audience",

	"RATE_LIMIT_REQUESTS": "rate_limit.requests",
	"RATE_LIMIT_WINDOW":   "rate_limit.window",
	"RATE_LIMIT_BURST":    "rate_limit.burst",

	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",

	"RAZORPAY_KEY_ID":     "payment.key_id",
	"RAZORPAY_KEY_SECRET": "payment.key_secret",
	"PAYMENT_CURRENCY":    "payment.currency",
	"PAYMENT_ORDER_TTL":   "payment.order_ttl",

	"STORAGE_DRIVER":       "storage.driver",
	"STORAGE_LOCAL_DIR":    "storage.local_dir",
	"STORAGE_PUBLIC_URL":   "storage.public_url",
	"S3_BUCKET":            "storage.s3_bucket",
	"S3_ENDPOINT":          "storage.s3_endpoint",
	"S3_REGION":            "storage.s3_region",
	"S3_ACCESS_KEY_ID":     "storage.s3_access_key",
	"S3_SECRET_ACCESS_KEY": "storage.s3_secret_key",

	"EVENTS_ENABLED":  "events.enabled",
	"AMQP_URL":        "events.url",
	"EVENTS_EXCHANGE": "events.exchange",

	"LIBRARY_TRIAL_PERIOD":        "library.trial_period",
	"LIBRARY_SUBSCRIPTION_PERIOD": "library.subscription_period",

	"MMLE_API_URL":         "client.api_url",
	"MMLE_SESSION_STORE":   "client.session_store",
	"MMLE_SESSION_FILE":    "client.session_file",
	"MMLE_REQUEST_TIMEOUT": "client.request_timeout",
}

// envKey returns "" for unknown variables, which koanf skips.
func envKey(name string) string {
	return envKeys[name]
}
