package commands

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/query"
	"github.com/spf13/cobra"
)

// NewBalanceCmd returns the command printing the balance of an account
func NewBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account]",
		Short: "Print the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE:  balance,
	}
}

func balance(cmd *cobra.Command, args []string) error {
	id, err := ledger.AccountIDFromString(args[0])
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := signalContext()
	defer cancel()

	amount, err := query.NewAccountBalanceQuery().SetAccountID(id).Execute(ctx, c)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, amount)
	return nil
}
