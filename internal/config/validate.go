// AngelaMos | 2026
// validate.go

package config

import (
	"errors"
	"slices"
)

type rule struct {
	broken bool
	msg    string
}

func firstBroken(rules []rule) error {
	for _, r := range rules {
		if r.broken {
			return errors.New(r.msg)
		}
	}
	return nil
}

func (c *Config) validateCommon() error {
	return firstBroken([]rule{
		{
			!slices.Contains([]string{"file", "redis", "memory"}, c.Client.SessionStore),
			"client.session_store must be one of file, redis, memory",
		},
		{c.Client.RequestTimeout <= 0, "client.request_timeout must be positive"},
	})
}

// ValidateServer checks the settings only the reference backend needs.
func (c *Config) ValidateServer() error {
	return firstBroken([]rule{
		{c.Database.URL == "", "DATABASE_URL is required"},
		{c.Redis.URL == "", "REDIS_URL is required"},
		{c.JWT.PrivateKeyPath == "", "JWT_PRIVATE_KEY_PATH is required"},
		{
			c.Payment.KeyID == "" || c.Payment.KeySecret == "",
			"RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required",
		},
		{
			c.Storage.Driver != "local" && c.Storage.Driver != "s3",
			"storage.driver must be local or s3",
		},
		{
			c.Storage.Driver == "s3" && c.Storage.S3Bucket == "",
			"S3_BUCKET is required for the s3 storage driver",
		},
		{c.Events.Enabled && c.Events.URL == "", "AMQP_URL is required when events are enabled"},
		{
			c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowedOrigins, "*"),
			"CORS wildcard '*' cannot be used with AllowCredentials",
		},
		{c.IsProduction() && c.Otel.Enabled && c.Otel.Insecure, "OTEL_INSECURE must be false in production"},
		{c.Server.ReadTimeout <= 0, "server.read_timeout must be positive"},
		{c.Server.WriteTimeout <= 0, "server.write_timeout must be positive"},
	})
}
