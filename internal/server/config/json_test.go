package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_AppliesFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr": ":9999",
		"database_dsn": "postgres://conf",
		"secret_key": "from-file",
		"token_validity_duration": "45m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	parseJson(config)

	assert.Equal(t, ":9999", config.EndpointAddr)
	assert.Equal(t, "postgres://conf", config.DatabaseDSN)
	assert.Equal(t, "from-file", config.SecretKey)
	assert.Equal(t, 45*time.Minute, config.TokenValidityDuration)
}

func TestParseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	config := &Config{EndpointAddr: ":8080"}
	parseJson(config)

	assert.Equal(t, ":8080", config.EndpointAddr)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	require.Panics(t, func() { parseJson(&Config{}) })
}
