package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
	"github.com/dmitrijs2005/coursehub/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept either strings such as "15m" or integer nanoseconds.
// Only keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	UserSecretKey               *string         `json:"user_secret_key"`
	AdminSecretKey              *string         `json:"admin_secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	HashCost                    *int            `json:"hash_cost"`
	RedisURL                    *string         `json:"redis_url"`
	CatalogCacheTTL             *timex.Duration `json:"catalog_cache_ttl"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	ImageUploadURLValidity      *timex.Duration `json:"image_upload_url_validity"`
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing happens. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	copyIfSet(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	copyIfSet(&config.DatabaseDSN, c.DatabaseDSN)
	copyIfSet(&config.UserSecretKey, c.UserSecretKey)
	copyIfSet(&config.AdminSecretKey, c.AdminSecretKey)
	copyIfSet(&config.HashCost, c.HashCost)
	copyIfSet(&config.RedisURL, c.RedisURL)
	copyIfSet(&config.S3RootUser, c.S3RootUser)
	copyIfSet(&config.S3RootPassword, c.S3RootPassword)
	copyIfSet(&config.S3Bucket, c.S3Bucket)
	copyIfSet(&config.S3Region, c.S3Region)
	copyIfSet(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CatalogCacheTTL != nil {
		config.CatalogCacheTTL = c.CatalogCacheTTL.Duration
	}
	if c.ImageUploadURLValidity != nil {
		config.ImageUploadURLValidity = c.ImageUploadURLValidity.Duration
	}
}

func copyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
