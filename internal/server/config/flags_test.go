package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "5",
				"-k", "00112233445566778899aabbccddeeff", "-m", "root",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-l", "debug", "-f", "zap",
			},
			expected: &Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				AuthoritySeed:               "00112233445566778899aabbccddeeff",
				AdminUserID:                 "root",
				S3RootUser:                  "user",
				S3RootPassword:              "password",
				S3Bucket:                    "bucket",
				S3Region:                    "us-west-1",
				S3BaseEndpoint:              "http://endpoint",
				LogLevel:                    "debug",
				LogFormat:                   "zap",
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-x", "1", "--verbose", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1"},
		},
		{
			name:    "bad int",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			config := &Config{}
			err := parseFlags(config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestParseFlags_KeepsSubMinuteTTLWhenUnset(t *testing.T) {
	withArgs(t, "-a", ":2")

	config := &Config{AccessTokenValidityDuration: 90 * time.Second}
	require.NoError(t, parseFlags(config))
	assert.Equal(t, 90*time.Second, config.AccessTokenValidityDuration)
}
