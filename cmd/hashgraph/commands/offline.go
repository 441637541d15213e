package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/mosaicnetworks/hashgraph-sdk/src/transaction"
	"github.com/mosaicnetworks/hashgraph-sdk/src/wire"
	"github.com/spf13/cobra"
)

// The freeze, sign, submit and show commands hand a transaction over through
// the store, so that it can be signed by several key holders before it is
// sent.

// NewFreezeCmd returns the command that freezes a transfer, signs it with the
// operator and stores it
func NewFreezeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Freeze and sign a transfer, and store it for later submission",
		RunE:  freeze,
	}
	addTransferFlags(cmd)
	return cmd
}

func freeze(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	tr, err := newTransfer(c)
	if err != nil {
		return err
	}

	tx, err := tr.Freeze(c)
	if err != nil {
		return err
	}
	if err := tx.SignWithOperator(c); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(tx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tx.TransactionID())
	return nil
}

// NewSignCmd returns the command adding a signature to a stored transaction
func NewSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign [transaction id]",
		Short: "Sign a stored transaction with the key in --key",
		Args:  cobra.ExactArgs(1),
		RunE:  sign,
	}
}

func sign(cmd *cobra.Command, args []string) error {
	id, err := parseTransactionID(args)
	if err != nil {
		return err
	}

	key, err := readKey()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Get(id)
	if err != nil {
		return err
	}
	if err := tx.SignWith(key); err != nil {
		return err
	}
	if err := st.Put(tx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s signed by %s\n", id, key.PublicKey())
	return nil
}

// NewSubmitCmd returns the command executing a stored transaction
func NewSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit [transaction id]",
		Short: "Submit a stored transaction and wait for its receipt",
		Args:  cobra.ExactArgs(1),
		RunE:  submit,
	}
}

func submit(cmd *cobra.Command, args []string) error {
	id, err := parseTransactionID(args)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Get(id)
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

	resp, err := tx.Execute(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp)

	// accepted transactions cannot be submitted again
	if err := st.Delete(id); err != nil {
		return err
	}

	receipt, err := resp.GetReceipt(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, receipt.Status)

	return nil
}

var showJSON bool

// NewShowCmd returns the command describing a stored transaction
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [transaction id]",
		Short: "Describe a stored transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  show,
	}
	cmd.Flags().BoolVar(&showJSON, "json", false, "Dump the signed transaction of every node as JSON")
	return cmd
}

func show(cmd *cobra.Command, args []string) error {
	id, err := parseTransactionID(args)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tx, err := st.Get(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tx)

	nodes := tx.NodeAccountIDs()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Num < nodes[j].Num })

	signatures := tx.Signatures()
	hashes, err := tx.HashPerNode()
	if err != nil && !errors.Is(err, transaction.ErrNotSigned) {
		return err
	}

	for _, node := range nodes {
		h := "unsigned"
		if hash, ok := hashes[node]; ok {
			h = hex.EncodeToString(hash)
		}
		fmt.Fprintf(out, "  %s: %d signature(s), hash %s\n", node, len(signatures[node]), h)

		if !showJSON {
			continue
		}
		wtx, err := tx.WireTransaction(node)
		if err != nil {
			return err
		}
		data, err := wire.MarshalJSON(wtx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s\n", data)
	}

	return nil
}

// NewListCmd returns the command listing stored transactions
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
}

func list(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txs, err := st.List()
	if err != nil {
		return err
	}
	for _, tx := range txs {
		fmt.Fprintln(cmd.OutOrStdout(), tx)
	}
	return nil
}
