package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	conf := NewDefaultConfig()

	assert.Equal(t, DefaultMaxAttempts, conf.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, conf.MinBackoff)
	assert.Equal(t, 8*time.Second, conf.MaxBackoff)
	assert.Equal(t, int64(ledger.Hbar), conf.MaxQueryPayment)
	assert.Nil(t, conf.Operator)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hashgraph.yaml")

	content := `
log: debug
network:
  - address: 127.0.0.1:50211
    account: 0.0.3
  - address: 127.0.0.1:50212
    account: 0.0.4
operator:
  account: 0.0.2
  private-key: deadbeef
max-attempts: 5
min-backoff: 10ms
retryable-statuses:
  - BUSY
  - UNKNOWN
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, 5, conf.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, conf.MinBackoff)
	// untouched values keep their defaults
	assert.Equal(t, DefaultMaxBackoff, conf.MaxBackoff)

	require.NotNil(t, conf.Operator)
	assert.Equal(t, "0.0.2", conf.Operator.AccountID)
	assert.Equal(t, "deadbeef", conf.Operator.PrivateKey)

	network, err := conf.NetworkMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]ledger.AccountID{
		"127.0.0.1:50211": ledger.NewAccountID(3),
		"127.0.0.1:50212": ledger.NewAccountID(4),
	}, network)

	statuses, err := conf.Statuses()
	require.NoError(t, err)
	assert.Equal(t, []ledger.Status{ledger.StatusBusy, ledger.StatusUnknown}, statuses)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hashgraph.json")

	content := `{"network": [{"address": "127.0.0.1:50211", "account": "0.0.3"}], "workers": 8}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, conf.Workers)
	assert.Len(t, conf.Network, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBadValues(t *testing.T) {
	conf := NewDefaultConfig()

	conf.Network = []Node{{Address: "127.0.0.1:1", AccountID: "not-an-account"}}
	_, err := conf.NetworkMap()
	assert.ErrorIs(t, err, ledger.ErrInvalidEntityID)

	conf.RetryableStatuses = []string{"NOT_A_STATUS"}
	_, err = conf.Statuses()
	assert.Error(t, err)

	conf.RetryableStatuses = nil
	statuses, err := conf.Statuses()
	assert.NoError(t, err)
	assert.Nil(t, statuses)
}

func TestSetDataDir(t *testing.T) {
	conf := NewDefaultConfig()
	conf.SetDataDir("/tmp/hg")

	assert.Equal(t, filepath.Join("/tmp/hg", DefaultBadgerFile), conf.StorePath)
	assert.Equal(t, filepath.Join("/tmp/hg", DefaultKeyfile), conf.Keyfile())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, "warning", LogLevel("warn").String())
	assert.Equal(t, "debug", LogLevel("garbage").String())
}
