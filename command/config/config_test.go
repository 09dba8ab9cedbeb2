package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/storage"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestReadConfigFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		content    string
		prometheus bool
	}{
		{
			"config.json",
			`{"data_dir": "/tmp/x", "storage": "boltdb", "log_level": "DEBUG", "telemetry": {"prometheus": true}}`,
			true,
		},
		{
			"config.yaml",
			"data_dir: /tmp/x\nstorage: boltdb\nlog_level: DEBUG\ntelemetry:\n  prometheus: true\n",
			true,
		},
		{
			"config.hcl",
			"data_dir = \"/tmp/x\"\nstorage = \"boltdb\"\nlog_level = \"DEBUG\"\n",
			false,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			config, err := ReadConfigFile(writeFile(t, c.name, c.content))
			require.NoError(t, err)

			assert.Equal(t, "/tmp/x", config.DataDir)
			assert.Equal(t, "boltdb", config.Storage)
			assert.Equal(t, "DEBUG", config.LogLevel)
			assert.Equal(t, c.prometheus, config.Telemetry.Prometheus)

			// untouched fields keep their defaults
			assert.Equal(t, storage.DefaultCredentialCacheSize, config.CredentialCacheSize)
		})
	}
}

func TestReadConfigFile_UnknownSuffix(t *testing.T) {
	t.Parallel()

	_, err := ReadConfigFile(writeFile(t, "config.toml", "storage = 1"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig().Validate())

	config := DefaultConfig()
	config.Storage = "rocksdb"
	config.CredentialCacheSize = -1
	config.LogLevel = "loud"

	err := config.Validate()
	require.ErrorIs(t, err, storage.ErrUnknownBackend)
	require.ErrorIs(t, err, errInvalidCacheSize)

	config = DefaultConfig()
	config.DataDir = ""
	require.ErrorIs(t, config.Validate(), errMissingDataDir)

	config.Storage = string(server.MemoryStorage)
	require.NoError(t, config.Validate())

	config = DefaultConfig()
	config.Sender = "0x00000000000000000000000000000000000000aa"
	require.ErrorIs(t, config.Validate(), errSenderWithoutNode)

	config.JSONRPCAddr = "http://127.0.0.1:8545"
	require.NoError(t, config.Validate())

	config.Sender = "0xzz"
	require.Error(t, config.Validate())
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.LogLevel = "warn"

	built, err := config.BuildConfig()
	require.NoError(t, err)

	assert.Equal(t, server.LevelDBStorage, built.Storage)
	assert.Equal(t, hclog.Warn, built.LogLevel)
	assert.Equal(t, "dev", built.Chain.Name)
	assert.False(t, built.Telemetry.Prometheus)

	chainPath := writeFile(t, "chain.json", `{
		"name": "test",
		"params": {
			"chainID": 7,
			"forks": {},
			"dexAllowList": {"enabledAddresses": ["0x00000000000000000000000000000000000000de"]}
		}
	}`)

	config.ChainConfigPath = chainPath

	built, err = config.BuildConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", built.Chain.Name)
	assert.Equal(t, int64(7), built.Chain.Params.ChainID)
	assert.Len(t, built.Chain.Params.DexAllowList.EnabledAddresses, 1)

	config.ChainConfigPath = filepath.Join(t.TempDir(), "missing.json")

	_, err = config.BuildConfig()
	require.Error(t, err)
}
