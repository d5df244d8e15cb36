package config

import (
	"errors"
	"time"
)

type Config struct {
	Port        int
	MongoURI    string
	MongoDBName string

	JWTSecret   string
	JWTIssuer   string
	TokenExpiry time.Duration
	BcryptCost  int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSUrl string

	SendGridAPIKey string
	SenderName     string
	SenderEmail    string

	LoginRateWindow time.Duration
	LoginRateBurst  int
	EmailRateWindow time.Duration
	EmailRateBurst  int
}

// Load reads the configuration from the environment. Secrets have no
// defaults; a process without them refuses to start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        GetEnvAsInt("PORT", 8080),
		MongoURI:    GetEnvAsString("MONGODB_URI", ""),
		MongoDBName: GetEnvAsString("MONGODB_DATABASE", "real_estate_db"),

		JWTSecret:   GetEnvAsString("JWT_SECRET", ""),
		JWTIssuer:   GetEnvAsString("JWT_ISSUER", "listings-service"),
		TokenExpiry: GetEnvAsDuration("TOKEN_EXPIRY", 24*time.Hour),
		BcryptCost:  GetEnvAsInt("BCRYPT_COST", 0),

		RedisAddr:     GetEnvAsString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnvAsString("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		NATSUrl: GetEnvAsString("NATS_URL", ""),

		SendGridAPIKey: GetEnvAsString("SENDGRID_API_KEY", ""),
		SenderName:     GetEnvAsString("SENDER_NAME", "Listings Service"),
		SenderEmail:    GetEnvAsString("SENDER_EMAIL", ""),

		LoginRateWindow: GetEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		LoginRateBurst:  GetEnvAsInt("LOGIN_RATE_BURST", 5),
		EmailRateWindow: GetEnvAsDuration("EMAIL_RATE_WINDOW", time.Minute),
		EmailRateBurst:  GetEnvAsInt("EMAIL_RATE_BURST", 1),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
