package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/common"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the
	// operator's private key
	DefaultKeyfile = "priv_key"

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database of offline transactions
	DefaultBadgerFile = "badger_db"

	// DefaultConfigFile is the default name of the configuration file, without
	// its extension
	DefaultConfigFile = "hashgraph"
)

// Default configuration values.
const (
	DefaultLogLevel          = "info"
	DefaultMaxTransactionFee = int64(ledger.Hbar)
	DefaultMaxQueryPayment   = int64(ledger.Hbar)
	DefaultRequestTimeout    = 2 * time.Minute
	DefaultCloseTimeout      = 30 * time.Second
	DefaultMaxAttempts       = 10
	DefaultMinBackoff        = 250 * time.Millisecond
	DefaultMaxBackoff        = 8 * time.Second
	DefaultWorkers           = 4
	DefaultRateLimit         = 0
	DefaultRateBurst         = 1
	DefaultUnhealthyTTL      = 30 * time.Second
	DefaultMaxPool           = 2
	DefaultTCPTimeout        = 10 * time.Second
	DefaultMocknetAddr       = "127.0.0.1:50211"
	DefaultMocknetNodes      = 3
)

// Node associates the address of a network node with its account.
type Node struct {
	Address   string `mapstructure:"address"`
	AccountID string `mapstructure:"account"`
}

// Operator identifies the account that pays for transactions and queries.
type Operator struct {
	AccountID  string `mapstructure:"account"`
	PrivateKey string `mapstructure:"private-key"`
}

// Config contains all the configuration properties of a client.
type Config struct {
	// DataDir is the top-level directory containing keys, configuration and
	// the offline store
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// Network lists the nodes the client may send requests to.
	Network []Node `mapstructure:"network"`

	// Operator is optional. Without it the client can only run free queries
	// and submit transactions signed elsewhere.
	Operator *Operator `mapstructure:"operator"`

	// MaxTransactionFee is the fee, in tinybars, used by transactions that do
	// not set one explicitly.
	MaxTransactionFee int64 `mapstructure:"max-transaction-fee"`

	// MaxQueryPayment is the largest cost, in tinybars, the client pays for a
	// query whose payment is negotiated automatically.
	MaxQueryPayment int64 `mapstructure:"max-query-payment"`

	// RequestTimeout bounds every single attempt.
	RequestTimeout time.Duration `mapstructure:"request-timeout"`

	// CloseTimeout bounds how long Close waits for asynchronous work.
	CloseTimeout time.Duration `mapstructure:"close-timeout"`

	// MaxAttempts, MinBackoff and MaxBackoff drive the retry loop. The
	// backoff doubles from MinBackoff and is capped at MaxBackoff.
	MaxAttempts int           `mapstructure:"max-attempts"`
	MinBackoff  time.Duration `mapstructure:"min-backoff"`
	MaxBackoff  time.Duration `mapstructure:"max-backoff"`

	// RetryableStatuses overrides the precheck statuses that cause a retry on
	// the next node. Names are those printed by ledger.Status.
	RetryableStatuses []string `mapstructure:"retryable-statuses"`

	// Workers is the number of goroutines running asynchronous executions.
	Workers int `mapstructure:"workers"`

	// RateLimit is the number of attempts per second the client may send. 0
	// disables limiting. RateBurst is the bucket size.
	RateLimit float64 `mapstructure:"rate-limit"`
	RateBurst int     `mapstructure:"rate-burst"`

	// UnhealthyTTL is how long a node that failed at the transport level is
	// skipped by node selection.
	UnhealthyTTL time.Duration `mapstructure:"unhealthy-ttl"`

	// MaxPool controls how many TCP connections are pooled per node.
	MaxPool int `mapstructure:"max-pool"`

	// TCPTimeout is the I/O timeout of TCP connections.
	TCPTimeout time.Duration `mapstructure:"timeout"`

	// StorePath is the directory of the Badger database holding frozen
	// transactions between the freeze, sign and submit commands.
	StorePath string `mapstructure:"store"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:           DefaultDataDir(),
		LogLevel:          DefaultLogLevel,
		MaxTransactionFee: DefaultMaxTransactionFee,
		MaxQueryPayment:   DefaultMaxQueryPayment,
		RequestTimeout:    DefaultRequestTimeout,
		CloseTimeout:      DefaultCloseTimeout,
		MaxAttempts:       DefaultMaxAttempts,
		MinBackoff:        DefaultMinBackoff,
		MaxBackoff:        DefaultMaxBackoff,
		Workers:           DefaultWorkers,
		RateLimit:         DefaultRateLimit,
		RateBurst:         DefaultRateBurst,
		UnhealthyTTL:      DefaultUnhealthyTTL,
		MaxPool:           DefaultMaxPool,
		TCPTimeout:        DefaultTCPTimeout,
		StorePath:         DefaultStorePath(),
	}

	return config
}

// NewTestConfig returns a config object with default values, short timeouts
// and a special logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.RequestTimeout = time.Second
	config.CloseTimeout = time.Second
	config.MinBackoff = time.Millisecond
	config.MaxBackoff = 4 * time.Millisecond
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Load reads a configuration file in any format supported by viper (JSON,
// YAML, TOML...). Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	config := NewDefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}

	return config, nil
}

// SetDataDir sets the top-level directory, and updates the store path if it
// is currently set to the default value.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.StorePath == DefaultStorePath() {
		c.StorePath = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Keyfile returns the full path of the file containing the private key.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// NetworkMap returns the network as a map from node address to account.
func (c *Config) NetworkMap() (map[string]ledger.AccountID, error) {
	network := make(map[string]ledger.AccountID, len(c.Network))
	for _, n := range c.Network {
		id, err := ledger.AccountIDFromString(n.AccountID)
		if err != nil {
			return nil, fmt.Errorf("network node %s: %w", n.Address, err)
		}
		network[n.Address] = id
	}
	return network, nil
}

// Statuses parses RetryableStatuses. It returns nil when the list is empty,
// meaning the defaults apply.
func (c *Config) Statuses() ([]ledger.Status, error) {
	if len(c.RetryableStatuses) == 0 {
		return nil, nil
	}
	res := make([]ledger.Status, 0, len(c.RetryableStatuses))
	for _, name := range c.RetryableStatuses {
		s, err := ledger.StatusFromString(name)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

// Logger returns a formatted logrus Entry, with prefix set to "hashgraph".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "hashgraph")
}

// SetLogger replaces the logger used by the client built from this config.
func (c *Config) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// DefaultStorePath returns the default path for the badger database files.
func DefaultStorePath() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config
// based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Hashgraph")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Hashgraph")
		} else {
			return filepath.Join(home, ".hashgraph")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
