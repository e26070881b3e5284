package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"server",
		"-a", ":9090",
		"-d", "postgres://u:p@h:5432/db",
		"-s", "another-secret",
		"-i", "issuer-x",
		"-o", "audience-y",
		"-t", "30",
		"-k", "s3",
		"-b", "files",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h:5432/db", c.DatabaseDSN)
	assert.Equal(t, "another-secret", c.SecretKey)
	assert.Equal(t, "issuer-x", c.TokenIssuer)
	assert.Equal(t, "audience-y", c.TokenAudience)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, BlobBackendS3, c.BlobBackend)
	assert.Equal(t, "files", c.S3Bucket)
}

func TestParseFlags_IgnoresUnknownFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"server", "-z", "junk", "-a", ":7070"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":7070", c.EndpointAddr)
}
