package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is read before the environment is inspected. Variables already
// present in the process environment take precedence over the file.
var dotenvFile = ".env"

// parseEnv overlays values from environment variables:
//
//	PORT                     HTTP port (bound on all interfaces)
//	DATABASE_CONNECTION_URL  PostgreSQL DSN
//	JWT_USER_PASSWORD        user token secret
//	JWT_ADMIN_PASSWORD       admin token secret
//	NO_OF_ROUNDS             bcrypt cost
//	TOKEN_VALIDITY_MINUTES   token lifetime, 0 disables expiry
//	REDIS_URL                catalog cache
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Malformed numbers are ignored and the previous value is kept.
func parseEnv(config *Config) {
	_ = godotenv.Load(dotenvFile)

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	setString(&config.DatabaseDSN, "DATABASE_CONNECTION_URL")
	setString(&config.UserSecretKey, "JWT_USER_PASSWORD")
	setString(&config.AdminSecretKey, "JWT_ADMIN_PASSWORD")
	setString(&config.RedisURL, "REDIS_URL")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if n, ok := lookupInt("NO_OF_ROUNDS"); ok {
		config.HashCost = n
	}
	if n, ok := lookupInt("TOKEN_VALIDITY_MINUTES"); ok {
		config.AccessTokenValidityDuration = time.Duration(n) * time.Minute
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
