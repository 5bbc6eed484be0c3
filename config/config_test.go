package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"bot": {"token": "123:abc", "owner": 42, "group": "LottoGroup"},
	"seed": "file seed",
	"contractAddress": "0x6D5b39bbF465d07246792b66955a654a739A6D0b",
	"network": {"rpc": "https://sepolia-rpc.scroll.io"}
}`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, int64(42), cfg.Bot.Owner)
	assert.Equal(t, int64(utils.ScrollSepoliaChainID), cfg.Network.ChainID)
	assert.Equal(t, int32(utils.EtherDecimals), cfg.Network.Decimals)
	assert.Equal(t, uint64(utils.DefaultFirstRoundID), cfg.Network.FirstRoundID)
	assert.Equal(t, utils.DefaultRefreshInterval, cfg.Network.RefreshInterval)
	assert.Zero(t, cfg.Network.RequestTimeout)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv(envBotToken, "999:env")
	t.Setenv(envSeed, "env seed")
	t.Setenv(envRPC, "http://localhost:8545")

	cfg, err := NewConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "999:env", cfg.Bot.Token)
	assert.Equal(t, "env seed", cfg.Seedphrase)
	assert.Equal(t, "http://localhost:8545", cfg.Network.RPC)
}

func TestNewConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"missing token":    `{"contractAddress": "0x6D5b39bbF465d07246792b66955a654a739A6D0b"}`,
		"bad contract":     `{"bot": {"token": "t"}, "contractAddress": "0x1234"}`,
		"bad rpc":          `{"bot": {"token": "t"}, "contractAddress": "0x6D5b39bbF465d07246792b66955a654a739A6D0b", "network": {"rpc": "not a url"}}`,
		"negative timeout": `{"bot": {"token": "t"}, "contractAddress": "0x6D5b39bbF465d07246792b66955a654a739A6D0b", "network": {"requestTimeout": -5}}`,
		"broken json":      `{"bot": `,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSaveKeepsFileSecrets(t *testing.T) {
	t.Setenv(envSeed, "env seed")
	path := writeConfig(t, validConfig)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	cfg.Bot.GroupID = -100123
	require.NoError(t, Save(cfg))

	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	saved := &data.AppConfig{}
	require.NoError(t, json.Unmarshal(bytes, saved))

	assert.Equal(t, int64(-100123), saved.Bot.GroupID)
	assert.Equal(t, "file seed", saved.Seedphrase)
	assert.Equal(t, "env seed", cfg.Seedphrase)
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOTTO_TEST_ONLY=value\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("LOTTO_TEST_ONLY") })

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "value", os.Getenv("LOTTO_TEST_ONLY"))
}
