package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ganatecnica/obradiary/internal/flagx"
	"github.com/ganatecnica/obradiary/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration file. Interval
// fields use timex.Duration so both "10s" and integer nanoseconds parse.
type FileConfig struct {
	HTTPAddr       string         `json:"http_addr" yaml:"http_addr"`
	HealthAddrGRPC string         `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDriver string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn" yaml:"database_dsn"`
	S3RootUser     string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogBackend     string         `json:"log_backend" yaml:"log_backend"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	Timezone       string         `json:"timezone" yaml:"timezone"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PresignExpiry  timex.Duration `json:"presign_expiry" yaml:"presign_expiry"`
}

// parseFile loads the file named by -c/-config in args into config.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Keys missing from the file keep their current value. An unreadable or
// malformed file panics.
func parseFile(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Timezone, c.Timezone)

	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
