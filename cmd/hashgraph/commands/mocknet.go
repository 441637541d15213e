package commands

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/config"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/mocknet"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
	"github.com/mosaicnetworks/hashgraph-sdk/src/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mocknetNodes          int
	mocknetListen         []string
	mocknetConsensusDelay time.Duration
	mocknetMetricsAddr    string
	mocknetFund           []string
)

// NewMocknetCmd returns the command serving a simulated network over TCP
func NewMocknetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mocknet",
		Short: "Run a simulated network",
		RunE:  runMocknet,
	}
	AddMocknetFlags(cmd)
	return cmd
}

//AddMocknetFlags adds flags to the mocknet command
func AddMocknetFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&mocknetNodes, "nodes", config.DefaultMocknetNodes, "Number of nodes")
	cmd.Flags().StringSliceVarP(&mocknetListen, "listen", "l", []string{config.DefaultMocknetAddr}, "Listen IP:Port of the nodes; a single address is incremented for every node")
	cmd.Flags().DurationVar(&mocknetConsensusDelay, "consensus-delay", 2*time.Second, "Time before a receipt leaves the UNKNOWN status")
	cmd.Flags().StringVar(&mocknetMetricsAddr, "metrics-addr", "", "Serve prometheus metrics and the mocknet API on this IP:Port")
	cmd.Flags().StringSliceVar(&mocknetFund, "fund", []string{"0.0.2=1000000"}, "Initial balances as account=hbars")
}

func runMocknet(cmd *cobra.Command, args []string) error {
	bind, err := bindAddrs(mocknetListen, mocknetNodes)
	if err != nil {
		return err
	}

	logger := _config.Hashgraph.Logger()

	network, err := mocknet.NewNetwork(mocknet.Config{
		Nodes:          mocknetNodes,
		BindAddrs:      bind,
		ConsensusDelay: mocknetConsensusDelay,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer network.Close()

	for _, f := range mocknetFund {
		id, amount, err := parseFund(f)
		if err != nil {
			return err
		}
		network.Ledger().Fund(id, amount)
		logger.WithFields(logrus.Fields{
			"account": id.String(),
			"balance": amount.String(),
		}).Info("Funded account")
	}

	if mocknetMetricsAddr != "" {
		srv := service.NewService(mocknetMetricsAddr, network, logger)
		go srv.Serve()
		defer srv.Close()
	}

	if err := writeNodes(network); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "network:")
	for _, node := range network.Nodes() {
		fmt.Fprintf(out, "  - address: %s\n    account: %s\n", node.Addr(), node.ID())
	}

	ctx, cancel := signalContext()
	defer cancel()
	<-ctx.Done()

	logger.Info("Shutting down")

	return nil
}

// writeNodes saves the addresses of the nodes to [datadir]/nodes.json, where
// the other commands look for them.
func writeNodes(network *mocknet.Network) error {
	if err := os.MkdirAll(_config.Hashgraph.DataDir, 0700); err != nil {
		return err
	}

	nodes := []*peers.Peer{}
	for _, node := range network.Nodes() {
		nodes = append(nodes, peers.NewPeer(node.ID(), node.Addr()))
	}
	return peers.NewJSONPeerSet(_config.Hashgraph.DataDir).Write(nodes)
}

// bindAddrs returns one address per node. A single address with a port is
// expanded to consecutive ports.
func bindAddrs(listen []string, n int) ([]string, error) {
	if n <= 0 {
		n = len(listen)
	}
	if len(listen) == n {
		return listen, nil
	}
	if len(listen) != 1 {
		return nil, fmt.Errorf("%d listen addresses for %d nodes", len(listen), n)
	}

	host, p, err := net.SplitHostPort(listen[0])
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, fmt.Errorf("listen port %q: %w", p, err)
	}

	res := make([]string, n)
	for i := range res {
		// port 0 lets the system pick a free port for every node
		if port == 0 {
			res[i] = listen[0]
			continue
		}
		res[i] = net.JoinHostPort(host, strconv.Itoa(port+i))
	}
	return res, nil
}

func parseFund(s string) (ledger.AccountID, ledger.Amount, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return ledger.AccountID{}, 0, fmt.Errorf("fund %q is not account=hbars", s)
	}
	id, err := ledger.AccountIDFromString(parts[0])
	if err != nil {
		return ledger.AccountID{}, 0, err
	}
	hbars, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return ledger.AccountID{}, 0, fmt.Errorf("fund %q: %w", s, err)
	}
	return id, ledger.HbarFrom(hbars), nil
}
