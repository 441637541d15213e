package commands

import (
	"fmt"

	"github.com/mosaicnetworks/hashgraph-sdk/src/client"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/spf13/cobra"
)

var (
	transferTo     string
	transferAmount float64
	transferMemo   string
)

// NewTransferCmd returns the command sending hbars from the operator and
// waiting for the receipt
func NewTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer hbars from the operator account",
		RunE:  transfer,
	}
	addTransferFlags(cmd)
	return cmd
}

func addTransferFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&transferTo, "to", "", "Recipient account")
	cmd.Flags().Float64Var(&transferAmount, "amount", 0, "Amount in hbars")
	cmd.Flags().StringVar(&transferMemo, "memo", "", "Transaction memo")
}

// newTransfer builds the CryptoTransfer described by the transfer flags.
func newTransfer(c *client.Client) (*transaction.CryptoTransfer, error) {
	op := c.Operator()
	if op == nil {
		return nil, client.ErrMissingOperator
	}

	to, err := ledger.AccountIDFromString(transferTo)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}

	amount := ledger.HbarFrom(transferAmount)
	if amount <= 0 {
		return nil, fmt.Errorf("--amount must be positive")
	}

	tr := transaction.NewCryptoTransfer()
	if err := tr.AddSender(op.AccountID, amount); err != nil {
		return nil, err
	}
	if err := tr.AddRecipient(to, amount); err != nil {
		return nil, err
	}
	if err := tr.SetTransactionMemo(transferMemo); err != nil {
		return nil, err
	}
	return tr, nil
}

func transfer(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	tr, err := newTransfer(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	resp, err := tr.Execute(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp)

	receipt, err := resp.GetReceipt(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.TransactionID, receipt.Status)

	return nil
}
