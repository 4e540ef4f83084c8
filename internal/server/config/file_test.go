package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"database_dsn":                   "vault.db",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "2m",
		"authority_seed":                 "ffeeddccbbaa99887766554433221100",
		"admin_user_id":                  "root",
		"s3_bucket":                      "bucket",
		"log_format":                     "text",
	})
	withArgs(t, "-config", path)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c))

	assert.Equal(t, "www.example:9000", c.EndpointAddrGRPC)
	assert.Equal(t, "vault.db", c.DatabaseDSN)
	assert.Equal(t, "my_secret_key", c.SecretKey)
	assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "ffeeddccbbaa99887766554433221100", c.AuthoritySeed)
	assert.Equal(t, "root", c.AdminUserID)
	assert.Equal(t, "bucket", c.S3Bucket)
	assert.Equal(t, "text", c.LogFormat)
	// untouched fields keep their defaults
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "info", c.LogLevel)
}

func TestParseFile_JSONNanoseconds(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"access_token_validity_duration": int64(time.Second)})
	withArgs(t, "-c", path)

	var c Config
	require.NoError(t, parseFile(&c))
	assert.Equal(t, time.Second, c.AccessTokenValidityDuration)
}

func TestParseFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"endpoint_addr_grpc: \":7000\"\naccess_token_validity_duration: 1h\nlog_level: warn\n"), 0o600))
	withArgs(t, "-c", path)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c))

	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestParseFile_NoFlag(t *testing.T) {
	withArgs(t)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c))
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func TestParseFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	withArgs(t, "-c", path)

	var c Config
	assert.Error(t, parseFile(&c))
}
