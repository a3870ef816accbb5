package config

import (
	"flag"
	"io"
	"time"

	"github.com/ganatecnica/obradiary/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-r string   gRPC health bind address (e.g., ":50051")
//	-k string   database driver, "pgx" or "sqlite"
//	-d string   database DSN (PostgreSQL URL or SQLite file path)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-n string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level
//	-o string   log backend, "slog" or "zap"
//	-z string   timezone for day boundaries (e.g., "America/Mexico_City")
//	-t int      request timeout, seconds
//	-x int      presigned URL expiry, minutes
//
// args is filtered with flagx.FilterArgs first so flags owned by other
// components (such as -c) do not make parsing fail.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-k", "-d", "-u", "-p", "-b", "-n", "-e", "-l", "-o", "-z", "-t", "-x"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to serve the HTTP API")
	fs.StringVar(&config.HealthAddrGRPC, "r", config.HealthAddrGRPC, "address and port to serve gRPC health")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "n", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogBackend, "o", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.Timezone, "z", config.Timezone, "timezone for diary days")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	presignExpiry := fs.Int("x", int(config.PresignExpiry.Minutes()), "presigned URL expiry (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.PresignExpiry = time.Duration(*presignExpiry) * time.Minute
}
