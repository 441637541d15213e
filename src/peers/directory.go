package peers

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/patrickmn/go-cache"
)

// DefaultUnhealthyTTL is how long a node that failed at the transport level
// is skipped by NextNode.
const DefaultUnhealthyTTL = 30 * time.Second

var (
	// ErrEmptyNetwork is returned when selecting a node from an empty
	// directory.
	ErrEmptyNetwork = errors.New("network has no nodes")

	// ErrUnknownNode is returned when resolving a node that is not part of
	// the directory.
	ErrUnknownNode = errors.New("unknown node")
)

// Directory maps node accounts to addresses and hands out nodes in a
// shuffled round robin. It is safe for concurrent use.
type Directory struct {
	mu        sync.Mutex
	peers     *PeerSet
	order     []ledger.AccountID
	next      int
	rnd       *rand.Rand
	unhealthy *cache.Cache
}

// NewDirectory creates a Directory over a PeerSet. Nodes marked unhealthy are
// skipped for unhealthyTTL; a non-positive value selects DefaultUnhealthyTTL.
func NewDirectory(peerSet *PeerSet, unhealthyTTL time.Duration) *Directory {
	if unhealthyTTL <= 0 {
		unhealthyTTL = DefaultUnhealthyTTL
	}

	d := &Directory{
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		// no janitor goroutine, Get already ignores expired entries
		unhealthy: cache.New(unhealthyTTL, 0),
	}
	d.SetPeerSet(peerSet)

	return d
}

// SetPeerSet replaces the nodes of the directory. The selection order is
// reshuffled and the health records are cleared.
func (d *Directory) SetPeerSet(peerSet *PeerSet) {
	if peerSet == nil {
		peerSet = NewPeerSet(nil)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	order := make([]ledger.AccountID, 0, peerSet.Len())
	for _, p := range peerSet.Peers {
		if peerSet.ByAccountID[p.ID] == p {
			order = append(order, p.ID)
		}
	}
	d.rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	d.peers = peerSet
	d.order = order
	d.next = 0
	d.unhealthy.Flush()
}

// PeerSet returns the current nodes.
func (d *Directory) PeerSet() *PeerSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peers
}

// Len returns the number of nodes.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// FanoutSize returns ceil(n/3) for the current nodes.
func (d *Directory) FanoutSize() int {
	return d.PeerSet().FanoutSize()
}

// NextNode returns the next node in the shuffled cycle. Nodes recently marked
// unhealthy are passed over, unless every node is unhealthy.
func (d *Directory) NextNode() (ledger.AccountID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.order)
	if n == 0 {
		return ledger.AccountID{}, ErrEmptyNetwork
	}

	for i := 0; i < n; i++ {
		id := d.order[d.next]
		d.next = (d.next + 1) % n
		if _, bad := d.unhealthy.Get(id.String()); !bad {
			return id, nil
		}
	}

	id := d.order[d.next]
	d.next = (d.next + 1) % n
	return id, nil
}

// AddressOf returns the network address of a node.
func (d *Directory) AddressOf(id ledger.AccountID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.peers.ByAccountID[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return p.NetAddr, nil
}

// MarkUnhealthy records a transport-level failure of a node.
func (d *Directory) MarkUnhealthy(id ledger.AccountID) {
	d.unhealthy.SetDefault(id.String(), time.Now())
}

// IsHealthy reports whether the node has not failed recently.
func (d *Directory) IsHealthy(id ledger.AccountID) bool {
	_, bad := d.unhealthy.Get(id.String())
	return !bad
}
