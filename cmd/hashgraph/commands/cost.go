package commands

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/query"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/spf13/cobra"
)

// NewCostCmd returns the command asking what the record of a transaction
// costs
func NewCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost [transaction id]",
		Short: "Print the cost of the record query of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  cost,
	}
}

func cost(cmd *cobra.Command, args []string) error {
	id, err := parseTransactionID(args)
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

	amount, err := query.NewTransactionRecordQuery().SetTransactionID(id).GetCost(ctx, c)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", amount)
	return nil
}

// NewRecordCmd returns the command fetching the record of a transaction
func NewRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record [transaction id]",
		Short: "Print the record of a transaction, paid by the operator",
		Args:  cobra.ExactArgs(1),
		RunE:  record,
	}
}

func record(cmd *cobra.Command, args []string) error {
	id, err := parseTransactionID(args)
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

	rec, err := query.GetRecord(ctx, c, id)
	if err != nil {
		return err
	}

	data, err := wire.MarshalJSON(rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}
