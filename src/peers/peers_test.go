package peers

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testPeerSet(n int) *PeerSet {
	peers := make([]*Peer, 0, n)
	for i := 0; i < n; i++ {
		peers = append(peers, NewPeer(
			ledger.NewAccountID(uint64(3+i)),
			"127.0.0.1:"+string(rune('a'+i)),
		))
	}
	return NewPeerSet(peers)
}

func TestFanoutSize(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  1,
		2:  1,
		3:  1,
		4:  2,
		6:  2,
		7:  3,
		13: 5,
	}
	for n, want := range cases {
		if got := testPeerSet(n).FanoutSize(); got != want {
			t.Fatalf("FanoutSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestPeerSetMutations(t *testing.T) {
	ps := testPeerSet(3)

	added := ps.WithNewPeer(NewPeer(ledger.NewAccountID(10), "127.0.0.1:10"))
	assert.Equal(t, 4, added.Len())
	assert.Equal(t, 3, ps.Len())

	same := added.WithNewPeer(NewPeer(ledger.NewAccountID(10), "127.0.0.1:11"))
	assert.Equal(t, 4, same.Len())

	removed := added.WithRemovedPeer(ledger.NewAccountID(3))
	assert.Equal(t, 3, removed.Len())
	_, ok := removed.ByAccountID[ledger.NewAccountID(3)]
	assert.False(t, ok)

	net := NewPeerSetFromNetwork(removed.Network())
	assert.ElementsMatch(t, removed.IDs(), net.IDs())
}

func TestJSONPeerSet(t *testing.T) {
	dir, err := ioutil.TempDir("", "hashgraph-peers")
	if err != nil {
		t.Fatalf("err: %v ", err)
	}
	defer os.RemoveAll(dir)

	store := NewJSONPeerSet(dir)

	// Try a read, should get nothing
	if _, err := store.PeerSet(); err == nil {
		t.Fatalf("store.PeerSet() should generate an error")
	}

	ps := testPeerSet(4)
	if err := store.Write(ps.Peers); err != nil {
		t.Fatalf("err: %v", err)
	}

	loaded, err := store.PeerSet()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	require.Equal(t, ps.Len(), loaded.Len())
	for i, p := range ps.Peers {
		if loaded.Peers[i].ID != p.ID || loaded.Peers[i].NetAddr != p.NetAddr {
			t.Fatalf("peer %d mismatch: %#v %#v", i, p, loaded.Peers[i])
		}
	}
}

func TestJSONPeerSetBadAccount(t *testing.T) {
	dir, err := ioutil.TempDir("", "hashgraph-peers")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`[{"NetAddr":"x","AccountID":"nope"}]`), 0644))

	_, err = NewJSONPeerSetFile(path).PeerSet()
	assert.True(t, errors.Is(err, ledger.ErrInvalidEntityID))
}

func TestDirectoryCycles(t *testing.T) {
	ps := testPeerSet(5)
	d := NewDirectory(ps, time.Minute)

	for lap := 0; lap < 3; lap++ {
		seen := make(map[ledger.AccountID]bool)
		for i := 0; i < ps.Len(); i++ {
			id, err := d.NextNode()
			require.NoError(t, err)
			if seen[id] {
				t.Fatalf("lap %d: node %s returned twice", lap, id)
			}
			seen[id] = true
		}
		assert.Len(t, seen, ps.Len())
	}
}

func TestDirectorySkipsUnhealthy(t *testing.T) {
	ps := testPeerSet(3)
	d := NewDirectory(ps, time.Minute)

	bad := ledger.NewAccountID(4)
	d.MarkUnhealthy(bad)
	assert.False(t, d.IsHealthy(bad))

	for i := 0; i < 10; i++ {
		id, err := d.NextNode()
		require.NoError(t, err)
		if id == bad {
			t.Fatalf("unhealthy node should be skipped")
		}
	}

	// when every node is unhealthy, selection still proceeds
	for _, id := range ps.IDs() {
		d.MarkUnhealthy(id)
	}
	_, err := d.NextNode()
	assert.NoError(t, err)

	// replacing the node set clears health records
	d.SetPeerSet(ps)
	assert.True(t, d.IsHealthy(bad))
}

func TestDirectoryHealthExpires(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	d := NewDirectory(testPeerSet(2), 20*time.Millisecond)

	bad := ledger.NewAccountID(3)
	d.MarkUnhealthy(bad)
	assert.False(t, d.IsHealthy(bad))

	assert.Eventually(t, func() bool { return d.IsHealthy(bad) }, time.Second, 5*time.Millisecond)
}

func TestDirectoryAddressOf(t *testing.T) {
	ps := testPeerSet(2)
	d := NewDirectory(ps, 0)

	addr, err := d.AddressOf(ledger.NewAccountID(3))
	require.NoError(t, err)
	assert.Equal(t, ps.Peers[0].NetAddr, addr)

	_, err = d.AddressOf(ledger.NewAccountID(99))
	assert.True(t, errors.Is(err, ErrUnknownNode))

	empty := NewDirectory(nil, 0)
	_, err = empty.NextNode()
	assert.Equal(t, ErrEmptyNetwork, err)
	assert.Equal(t, 0, empty.FanoutSize())
}
