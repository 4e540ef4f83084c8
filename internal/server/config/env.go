package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "REVIEWVAULT_"

// envFile is loaded when present. Variables already set in the process
// environment win over the file.
var envFile = ".env"

// parseEnv overlays REVIEWVAULT_* environment variables onto config.
//
//	REVIEWVAULT_GRPC_ADDR         gRPC bind address
//	REVIEWVAULT_DATABASE_DSN      PostgreSQL DSN
//	REVIEWVAULT_SECRET_KEY        JWT HMAC secret
//	REVIEWVAULT_ACCESS_TOKEN_TTL  access token lifetime, Go duration ("15m")
//	REVIEWVAULT_AUTHORITY_SEED    hex authority seed
//	REVIEWVAULT_ADMIN_USER_ID     catalog admin
//	REVIEWVAULT_S3_ROOT_USER, REVIEWVAULT_S3_ROOT_PASSWORD, REVIEWVAULT_S3_BUCKET,
//	REVIEWVAULT_S3_REGION, REVIEWVAULT_S3_BASE_ENDPOINT
//	REVIEWVAULT_LOG_LEVEL, REVIEWVAULT_LOG_FORMAT
func parseEnv(config *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	strs := map[string]*string{
		"GRPC_ADDR":        &config.EndpointAddrGRPC,
		"DATABASE_DSN":     &config.DatabaseDSN,
		"SECRET_KEY":       &config.SecretKey,
		"AUTHORITY_SEED":   &config.AuthoritySeed,
		"ADMIN_USER_ID":    &config.AdminUserID,
		"S3_ROOT_USER":     &config.S3RootUser,
		"S3_ROOT_PASSWORD": &config.S3RootPassword,
		"S3_BUCKET":        &config.S3Bucket,
		"S3_REGION":        &config.S3Region,
		"S3_BASE_ENDPOINT": &config.S3BaseEndpoint,
		"LOG_LEVEL":        &config.LogLevel,
		"LOG_FORMAT":       &config.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sACCESS_TOKEN_TTL: %w", envPrefix, err)
		}
		config.AccessTokenValidityDuration = d
	}

	return nil
}
