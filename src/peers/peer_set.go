package peers

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// PeerSet is a set of nodes forming a network.
type PeerSet struct {
	Peers       []*Peer                    `json:"peers"`
	ByAccountID map[ledger.AccountID]*Peer `json:"-"`
	ByAddr      map[string]*Peer           `json:"-"`
}

// NewPeerSet creates a new PeerSet from a list of Peers. When two peers share
// an account, the last one wins.
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		ByAccountID: make(map[ledger.AccountID]*Peer),
		ByAddr:      make(map[string]*Peer),
	}

	for _, peer := range peers {
		peerSet.ByAccountID[peer.ID] = peer
		peerSet.ByAddr[peer.NetAddr] = peer
	}

	peerSet.Peers = peers

	return peerSet
}

// NewPeerSetFromNetwork creates a PeerSet from an address -> node account
// mapping.
func NewPeerSetFromNetwork(network map[string]ledger.AccountID) *PeerSet {
	addrs := make([]string, 0, len(network))
	for addr := range network {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	peers := make([]*Peer, 0, len(addrs))
	for _, addr := range addrs {
		peers = append(peers, NewPeer(network[addr], addr))
	}

	return NewPeerSet(peers)
}

// WithNewPeer returns a new PeerSet with a list of peers including the new one.
func (peerSet *PeerSet) WithNewPeer(peer *Peer) *PeerSet {
	peers := peerSet.Peers

	// don't add it if it already exists
	if _, ok := peerSet.ByAccountID[peer.ID]; !ok {
		peers = append(peers, peer)
	}

	return NewPeerSet(peers)
}

// WithRemovedPeer returns a new PeerSet with a list of peers excluding the
// provided one.
func (peerSet *PeerSet) WithRemovedPeer(id ledger.AccountID) *PeerSet {
	_, peers := ExcludePeer(peerSet.Peers, id)
	return NewPeerSet(peers)
}

// IDs returns the node accounts of the PeerSet, in order.
func (peerSet *PeerSet) IDs() []ledger.AccountID {
	res := make([]ledger.AccountID, 0, len(peerSet.Peers))

	for _, peer := range peerSet.Peers {
		res = append(res, peer.ID)
	}

	return res
}

// Len returns the number of distinct nodes in the PeerSet.
func (peerSet *PeerSet) Len() int {
	return len(peerSet.ByAccountID)
}

// FanoutSize is the number of nodes a single operation is prepared for:
// ceil(n/3), and at least 1 for a non-empty set. Any subset of that size
// contains at least one honest node when less than a third of the network is
// faulty.
func (peerSet *PeerSet) FanoutSize() int {
	n := peerSet.Len()
	if n == 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(3)))
}

// Network returns the address -> node account mapping of the PeerSet.
func (peerSet *PeerSet) Network() map[string]ledger.AccountID {
	res := make(map[string]ledger.AccountID, len(peerSet.Peers))
	for _, p := range peerSet.Peers {
		res[p.NetAddr] = p.ID
	}
	return res
}

// Marshal marshals the peerset
func (peerSet *PeerSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(peerSet.Peers); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
