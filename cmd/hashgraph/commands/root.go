package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/config"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
	"github.com/mosaicnetworks/hashgraph-sdk/src/store"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command of the hashgraph client
var RootCmd = &cobra.Command{
	Use:               "hashgraph",
	Short:             "Command line client of a hashgraph ledger",
	PersistentPreRunE: loadConfig,
	TraverseChildren:  true,
}

func init() {
	AddRootFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(
		NewKeygenCmd(),
		NewBalanceCmd(),
		NewTransferCmd(),
		NewFreezeCmd(),
		NewSignCmd(),
		NewSubmitCmd(),
		NewShowCmd(),
		NewListCmd(),
		NewCostCmd(),
		NewRecordCmd(),
		NewMocknetCmd(),
		VersionCmd,
	)
}

//AddRootFlags adds the flags shared by every command
func AddRootFlags(f *pflag.FlagSet) {
	f.StringP("datadir", "d", _config.Hashgraph.DataDir, "Top-level directory for configuration, keys and stored transactions")
	f.String("log", _config.Hashgraph.LogLevel, "debug, info, warn, error, fatal, panic")
	f.String("log-file", _config.LogFile, "Also write logs to this file")

	f.String("operator-account", _config.OperatorAccount, "Account paying for transactions and queries, signing with the key in --key")
	f.String("key", _config.Keyfile, "Private key file (default [datadir]/priv_key)")
	f.StringSlice("node", _config.Nodes, "Network node as address=account, may be repeated")

	f.Int64("max-transaction-fee", _config.Hashgraph.MaxTransactionFee, "Default transaction fee in tinybars")
	f.Int64("max-query-payment", _config.Hashgraph.MaxQueryPayment, "Largest automatic query payment in tinybars")
	f.Duration("request-timeout", _config.Hashgraph.RequestTimeout, "Timeout of a single attempt")
	f.Int("max-attempts", _config.Hashgraph.MaxAttempts, "Attempts before giving up")
	f.Int("max-pool", _config.Hashgraph.MaxPool, "Connection pool size max")
	f.DurationP("timeout", "t", _config.Hashgraph.TCPTimeout, "TCP Timeout")
	f.String("store", _config.Hashgraph.StorePath, "Directory of the stored transactions database")
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

func loadConfig(cmd *cobra.Command, args []string) error {
	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --store, this will update the
	// default store path to be inside the new datadir
	_config.Hashgraph.SetDataDir(_config.Hashgraph.DataDir)

	logger, err := newLogger()
	if err != nil {
		return err
	}
	_config.Hashgraph.SetLogger(logger)

	_config.Hashgraph.Logger().WithFields(logrus.Fields{
		"DataDir":           _config.Hashgraph.DataDir,
		"LogLevel":          _config.Hashgraph.LogLevel,
		"Network":           len(_config.Hashgraph.Network) + len(_config.Nodes),
		"MaxTransactionFee": _config.Hashgraph.MaxTransactionFee,
		"MaxQueryPayment":   _config.Hashgraph.MaxQueryPayment,
		"RequestTimeout":    _config.Hashgraph.RequestTimeout,
		"MaxAttempts":       _config.Hashgraph.MaxAttempts,
		"StorePath":         _config.Hashgraph.StorePath,
		"OperatorAccount":   _config.OperatorAccount,
		"LogFile":           _config.LogFile,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/hashgraph.toml (.json, .yaml also work)
	viper.SetConfigName(config.DefaultConfigFile)
	viper.AddConfigPath(_config.Hashgraph.DataDir)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		logrus.Debugf("No config file found in: %s", _config.Hashgraph.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}

func newLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.Level = config.LogLevel(_config.Hashgraph.LogLevel)
	logger.Formatter = new(prefixed.TextFormatter)

	if _config.LogFile == "" {
		return logger, nil
	}

	f, err := os.OpenFile(_config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	f.Close()

	pathMap := lfshook.PathMap{}
	for _, level := range logrus.AllLevels {
		pathMap[level] = _config.LogFile
	}

	logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))

	return logger, nil
}

/*******************************************************************************
* HELPERS
*******************************************************************************/

// newClient creates a TCP client from the configuration. The network is the
// union of the config file, [datadir]/nodes.json and --node. The operator,
// when given on the command line, signs with the key read from the keyfile.
func newClient() (*client.Client, error) {
	c, err := client.FromConfig(&_config.Hashgraph, nil)
	if err != nil {
		return nil, err
	}

	network := c.Network()

	ps, err := peers.NewJSONPeerSet(_config.Hashgraph.DataDir).PeerSet()
	switch {
	case err == nil:
		for addr, id := range ps.Network() {
			network[addr] = id
		}
	case !os.IsNotExist(err):
		c.Close()
		return nil, err
	}

	if len(_config.Nodes) > 0 {
		for _, n := range _config.Nodes {
			addr, id, err := parseNode(n)
			if err != nil {
				c.Close()
				return nil, err
			}
			network[addr] = id
		}
	}
	c.SetNetwork(network)

	if len(network) == 0 {
		c.Close()
		return nil, fmt.Errorf("no network nodes configured, use --node or the network section of %s", config.DefaultConfigFile)
	}

	if _config.OperatorAccount != "" {
		id, err := ledger.AccountIDFromString(_config.OperatorAccount)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("operator: %w", err)
		}
		key, err := readKey()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.SetOperator(id, key)
	}

	return c, nil
}

func parseNode(s string) (string, ledger.AccountID, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", ledger.AccountID{}, fmt.Errorf("node %q is not address=account", s)
	}
	id, err := ledger.AccountIDFromString(parts[1])
	if err != nil {
		return "", ledger.AccountID{}, fmt.Errorf("node %q: %w", s, err)
	}
	return parts[0], id, nil
}

func readKey() (keys.PrivateKey, error) {
	key, err := keys.NewSimpleKeyfile(_config.keyfile()).ReadKey()
	if err != nil {
		return nil, fmt.Errorf("reading key %s: %w", _config.keyfile(), err)
	}
	return key, nil
}

func openStore() (store.Store, error) {
	return store.NewBadgerStore(_config.Hashgraph.StorePath, _config.Hashgraph.Logger())
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parseTransactionID(args []string) (ledger.TransactionID, error) {
	if len(args) != 1 {
		return ledger.TransactionID{}, fmt.Errorf("expected one transaction id")
	}
	return ledger.TransactionIDFromString(args[0])
}
