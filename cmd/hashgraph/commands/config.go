package commands

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/config"
)

// defaultPublicKeyfile is the name of the file keygen writes the public key
// to, next to the private key.
const defaultPublicKeyfile = "key.pub"

//CLIConfig contains the client configuration plus the flags that only make
//sense on the command line
type CLIConfig struct {
	Hashgraph config.Config `mapstructure:",squash"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `mapstructure:"log-file"`

	// OperatorAccount sets the operator, signing with the key in Keyfile.
	OperatorAccount string `mapstructure:"operator-account"`

	// Keyfile overrides the default private key location.
	Keyfile string `mapstructure:"key"`

	// Nodes adds address=account entries to the network.
	Nodes []string `mapstructure:"node"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Hashgraph: *config.NewDefaultConfig(),
	}
}

func (c *CLIConfig) keyfile() string {
	if c.Keyfile != "" {
		return c.Keyfile
	}
	return c.Hashgraph.Keyfile()
}
