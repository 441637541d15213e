package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/config"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto/keys"
	"github.com/mosaicnetworks/hashgraph-sdk/src/execution"
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/net"
	"github.com/mosaicnetworks/hashgraph-sdk/src/peers"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Default values of a Client.
const (
	DefaultMaxTransactionFee = ledger.Hbar
	DefaultMaxQueryPayment   = ledger.Hbar
	DefaultRequestTimeout    = 2 * time.Minute
	DefaultCloseTimeout      = 30 * time.Second
)

// Client is the entry point to a network. It implements
// execution.Environment.
type Client struct {
	mu sync.RWMutex

	directory *peers.Directory
	transport net.Transport
	operator  *Operator

	maxTransactionFee ledger.Amount
	maxQueryPayment   ledger.Amount
	requestTimeout    time.Duration
	closeTimeout      time.Duration
	policy            execution.RetryPolicy
	limiter           *rate.Limiter

	pool   *Pool
	logger *logrus.Entry
}

// New creates a Client sending requests to network, an address -> node
// account mapping, through trans. A nil logger selects a debug logger writing
// to stderr.
func New(network map[string]ledger.AccountID, trans net.Transport, logger *logrus.Entry) *Client {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &Client{
		directory:         peers.NewDirectory(peers.NewPeerSetFromNetwork(network), peers.DefaultUnhealthyTTL),
		transport:         trans,
		maxTransactionFee: DefaultMaxTransactionFee,
		maxQueryPayment:   DefaultMaxQueryPayment,
		requestTimeout:    DefaultRequestTimeout,
		closeTimeout:      DefaultCloseTimeout,
		policy:            execution.DefaultRetryPolicy(),
		pool:              NewPool(DefaultWorkers),
		logger:            logger.WithField("prefix", "client"),
	}
}

// FromConfig creates a Client from a configuration. When trans is nil, a TCP
// client transport is created with the pool size and timeout of conf.
func FromConfig(conf *config.Config, trans net.Transport) (*Client, error) {
	network, err := conf.NetworkMap()
	if err != nil {
		return nil, err
	}

	statuses, err := conf.Statuses()
	if err != nil {
		return nil, err
	}

	if conf.MaxTransactionFee < 0 || conf.MaxQueryPayment < 0 {
		return nil, ErrNegativeAmount
	}

	var operator *Operator
	if conf.Operator != nil && conf.Operator.AccountID != "" {
		id, err := ledger.AccountIDFromString(conf.Operator.AccountID)
		if err != nil {
			return nil, fmt.Errorf("operator: %w", err)
		}
		key, err := keys.ParsePrivateKey(conf.Operator.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("operator: %w", err)
		}
		operator = NewOperator(id, key)
	}

	// resources are created once the configuration is known to be valid

	logger := conf.Logger()

	if trans == nil {
		trans = net.NewTCPClientTransport(conf.MaxPool, conf.TCPTimeout, logger.WithField("prefix", "transport"))
	}

	c := &Client{
		directory:         peers.NewDirectory(peers.NewPeerSetFromNetwork(network), conf.UnhealthyTTL),
		transport:         trans,
		maxTransactionFee: ledger.Amount(conf.MaxTransactionFee),
		maxQueryPayment:   ledger.Amount(conf.MaxQueryPayment),
		requestTimeout:    conf.RequestTimeout,
		closeTimeout:      conf.CloseTimeout,
		policy: execution.RetryPolicy{
			MaxAttempts: conf.MaxAttempts,
			MinBackoff:  conf.MinBackoff,
			MaxBackoff:  conf.MaxBackoff,
			Retryable:   statuses,
		},
		pool:   NewPool(conf.Workers),
		logger: logger.WithField("prefix", "client"),
	}

	if conf.RateLimit > 0 {
		c.SetRateLimit(conf.RateLimit, conf.RateBurst)
	}

	if operator != nil {
		c.setOperator(operator)
	}

	return c, nil
}

// FromConfigFile loads a configuration file and creates a Client from it.
func FromConfigFile(path string, trans net.Transport) (*Client, error) {
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(conf, trans)
}

// SetNetwork replaces the nodes of the client.
func (c *Client) SetNetwork(network map[string]ledger.AccountID) {
	c.directory.SetPeerSet(peers.NewPeerSetFromNetwork(network))
}

// Network returns the address -> node account mapping of the client.
func (c *Client) Network() map[string]ledger.AccountID {
	return c.directory.PeerSet().Network()
}

// SetOperator sets the operator, signing with a private key held in memory.
func (c *Client) SetOperator(accountID ledger.AccountID, key keys.PrivateKey) {
	c.setOperator(NewOperator(accountID, key))
}

// SetOperatorWith sets the operator with an external signer, such as a
// hardware wallet, producing signatures for publicKey.
func (c *Client) SetOperatorWith(accountID ledger.AccountID, publicKey keys.PublicKey, signer keys.TransactionSigner) {
	c.setOperator(&Operator{
		AccountID: accountID,
		PublicKey: publicKey,
		Signer:    signer,
	})
}

func (c *Client) setOperator(op *Operator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = op
}

// Operator returns the operator, or nil when none is set.
func (c *Client) Operator() *Operator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.operator
}

// SetMaxTransactionFee sets the fee used by transactions that do not set one.
func (c *Client) SetMaxTransactionFee(fee ledger.Amount) error {
	if fee < 0 {
		return ErrNegativeAmount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxTransactionFee = fee
	return nil
}

// MaxTransactionFee returns the default transaction fee.
func (c *Client) MaxTransactionFee() ledger.Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxTransactionFee
}

// SetMaxQueryPayment sets the largest cost paid for a query whose payment is
// negotiated automatically.
func (c *Client) SetMaxQueryPayment(max ledger.Amount) error {
	if max < 0 {
		return ErrNegativeAmount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxQueryPayment = max
	return nil
}

// MaxQueryPayment returns the default query payment ceiling.
func (c *Client) MaxQueryPayment() ledger.Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxQueryPayment
}

// SetRequestTimeout sets the timeout of a single attempt.
func (c *Client) SetRequestTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestTimeout = timeout
}

// SetCloseTimeout sets how long Close waits for asynchronous executions.
func (c *Client) SetCloseTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeTimeout = timeout
}

// SetRetryPolicy replaces the retry policy.
func (c *Client) SetRetryPolicy(policy execution.RetryPolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy = policy
}

// SetRateLimit limits attempts to limit per second with the given burst. A
// non-positive limit removes the limiter.
func (c *Client) SetRateLimit(limit float64, burst int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit <= 0 {
		c.limiter = nil
		return
	}
	if burst <= 0 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(limit), burst)
}

// NextNode returns the next node of the shuffled round robin.
func (c *Client) NextNode() (ledger.AccountID, error) {
	return c.directory.NextNode()
}

// FanoutSize is the number of nodes a frozen transaction is bound to when
// its nodes are not set explicitly.
func (c *Client) FanoutSize() int {
	return c.directory.FanoutSize()
}

// Pool returns the worker pool of asynchronous executions.
func (c *Client) Pool() *Pool {
	return c.pool
}

// Transport implements execution.Environment.
func (c *Client) Transport() net.Transport {
	return c.transport
}

// AddressOf implements execution.Environment.
func (c *Client) AddressOf(node ledger.AccountID) (string, error) {
	return c.directory.AddressOf(node)
}

// RequestTimeout implements execution.Environment.
func (c *Client) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestTimeout
}

// RetryPolicy implements execution.Environment.
func (c *Client) RetryPolicy() execution.RetryPolicy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

// Logger implements execution.Environment.
func (c *Client) Logger() *logrus.Entry {
	return c.logger
}

// Wait implements execution.Environment.
func (c *Client) Wait(ctx context.Context) error {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if limiter == nil {
		return ctx.Err()
	}
	return limiter.Wait(ctx)
}

// MarkUnhealthy implements execution.Environment.
func (c *Client) MarkUnhealthy(node ledger.AccountID) {
	c.logger.WithField("node", node.String()).Debug("Marking node unhealthy")
	c.directory.MarkUnhealthy(node)
}

// Close waits for asynchronous executions, within the close timeout, and
// closes the transport.
func (c *Client) Close() error {
	c.mu.RLock()
	timeout := c.closeTimeout
	c.mu.RUnlock()

	if timeout <= 0 {
		timeout = DefaultCloseTimeout
	}

	err := c.pool.Close(timeout)

	if c.transport != nil {
		if terr := c.transport.Close(); terr != nil && err == nil {
			err = terr
		}
	}

	return err
}
