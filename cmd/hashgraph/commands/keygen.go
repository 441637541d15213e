package commands

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"

	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/spf13/cobra"
)

var (
	algorithm  string
	pubKeyFile string
)

// NewKeygenCmd produces a KeygenCmd which create a key pair
func NewKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create new key pair",
		RunE:  keygen,
	}

	AddKeygenFlags(cmd)

	return cmd
}

//AddKeygenFlags adds flags to the keygen command
func AddKeygenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&algorithm, "algorithm", keys.AlgorithmEd25519, "Key algorithm: ed25519 or secp256k1")
	cmd.Flags().StringVar(&pubKeyFile, "pub", "", "File where the public key will be written (default [datadir]/key.pub)")
}

func keygen(cmd *cobra.Command, args []string) error {
	privKeyFile := _config.keyfile()
	if _, err := os.Stat(privKeyFile); err == nil {
		return fmt.Errorf("A key already lives under: %s", path.Dir(privKeyFile))
	}

	key, err := keys.GenerateKey(algorithm)
	if err != nil {
		return fmt.Errorf("Error generating %s key: %s", algorithm, err)
	}

	if err := keys.NewSimpleKeyfile(privKeyFile).WriteKey(key); err != nil {
		return fmt.Errorf("Writing private key: %s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Your private key has been saved to: %s\n", privKeyFile)

	pubFile := pubKeyFile
	if pubFile == "" {
		pubFile = filepath.Join(filepath.Dir(privKeyFile), defaultPublicKeyfile)
	}

	if err := os.MkdirAll(path.Dir(pubFile), 0700); err != nil {
		return fmt.Errorf("Writing public key: %s", err)
	}

	if err := ioutil.WriteFile(pubFile, []byte(key.PublicKey().String()), 0600); err != nil {
		return fmt.Errorf("Writing public key: %s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Your public key has been saved to: %s\n", pubFile)

	return nil
}
