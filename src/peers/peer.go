package peers

import (
	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
)

// Peer is a network node.
type Peer struct {
	ID        ledger.AccountID `json:"-"`
	NetAddr   string
	AccountID string
}

// NewPeer creates a Peer reached at netAddr whose node account is id.
func NewPeer(id ledger.AccountID, netAddr string) *Peer {
	return &Peer{
		ID:        id,
		NetAddr:   netAddr,
		AccountID: id.String(),
	}
}

// computeID parses the textual AccountID, as read from a JSON file.
func (p *Peer) computeID() error {
	id, err := ledger.AccountIDFromString(p.AccountID)
	if err != nil {
		return err
	}

	p.ID = id

	return nil
}

// ExcludePeer is used to exclude a single node from a list of nodes.
func ExcludePeer(peers []*Peer, id ledger.AccountID) (int, []*Peer) {
	index := -1
	otherPeers := make([]*Peer, 0, len(peers))
	for i, p := range peers {
		if p.ID != id {
			otherPeers = append(otherPeers, p)
		} else {
			index = i
		}
	}
	return index, otherPeers
}
