package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g., ":3000")
//	-d string    PostgreSQL DSN
//	-us string   user token secret
//	-as string   admin token secret
//	-t int       token validity, minutes (0 = no expiry)
//	-n int       bcrypt cost
//	-r string    Redis URL for the catalog cache
//	-b string    S3 bucket for course images
//	-g string    S3 region
//	-e string    S3 base endpoint
//
// os.Args is filtered with flagx.FilterArgs first so that flags owned by
// other parsers (-c, test flags) do not cause errors.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-us", "-as", "-t", "-n", "-r", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.UserSecretKey, "us", config.UserSecretKey, "user token secret")
	fs.StringVar(&config.AdminSecretKey, "as", config.AdminSecretKey, "admin token secret")

	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "token validity (in minutes, 0 disables expiry)")

	fs.IntVar(&config.HashCost, "n", config.HashCost, "bcrypt cost")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for catalog cache")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
