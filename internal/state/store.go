// Package state provides the shared, continuously refreshed snapshot of node
// and wallet status that the pollers write and the UI reads.
package state

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Block height placeholders used when the real height is unavailable.
const (
	HeightUnknown = "unknown"
	HeightError   = "error"
)

// Channel describes one open channel as reported by listfunds.
type Channel struct {
	ShortID string
}

// Balances carries the on-chain and lightning balances computed from the most
// recent successful funds query. When that query failed, Err holds the failure
// message and applies to both balances; the numeric fields are meaningless.
type Balances struct {
	OnchainSats   int64
	LightningSats int64
	Err           string
}

// Failed reports whether the balances carry an error marker.
func (b Balances) Failed() bool { return b.Err != "" }

// NodeState is the snapshot the UI renders from. Values, never shared
// references, cross the store boundary.
type NodeState struct {
	NodeActive   bool
	WalletActive bool
	BlockHeight  string // decimal height, HeightUnknown, or HeightError
	PeerCount    int
	Channels     []Channel // order as returned by the node, never re-sorted
	Balances     Balances
}

// Store coordinates concurrent access to the node state. Two pollers write
// disjoint field groups; the UI reads whole snapshots. A single mutex keeps
// every update atomic as a snapshot, never field-by-field.
type Store struct {
	mu    sync.RWMutex
	state NodeState
	dirty atomic.Bool

	histMu     sync.Mutex
	history    []string
	dispatched int
}

// NewStore returns a store with all-inactive defaults.
func NewStore() *Store {
	return &Store{state: NodeState{BlockHeight: HeightUnknown}}
}

// SetNodeStatus replaces the node-poller-owned fields in one critical
// section and reports whether any of them changed.
func (s *Store) SetNodeStatus(active bool, blockHeight string, peerCount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.state.NodeActive != active ||
		s.state.BlockHeight != blockHeight ||
		s.state.PeerCount != peerCount
	s.state.NodeActive = active
	s.state.BlockHeight = blockHeight
	s.state.PeerCount = peerCount
	return changed
}

// SetWalletStatus replaces the wallet-poller-owned fields in one critical
// section and reports whether any of them changed. The channel comparison is
// structural, not length-based.
func (s *Store) SetWalletStatus(active bool, channels []Channel, balances Balances) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.state.WalletActive != active ||
		!slices.Equal(s.state.Channels, channels) ||
		s.state.Balances != balances
	s.state.WalletActive = active
	s.state.Channels = cloneChannels(channels)
	s.state.Balances = balances
	return changed
}

// Snapshot returns an independent copy of the current state.
func (s *Store) Snapshot() NodeState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Channels = cloneChannels(s.state.Channels)
	return snap
}

// MarkDirty records that the state changed since the last redraw.
func (s *Store) MarkDirty() { s.dirty.Store(true) }

// ConsumeDirty clears the dirty flag and reports whether it was set.
func (s *Store) ConsumeDirty() bool { return s.dirty.CompareAndSwap(true, false) }

// Dirty reports the flag without clearing it.
func (s *Store) Dirty() bool { return s.dirty.Load() }

// RecordCommand appends a raw input line to the operator-visible history.
func (s *Store) RecordCommand(line string) {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.history = append(s.history, line)
}

// History returns a copy of the recorded command lines in insertion order.
func (s *Store) History() []string {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	return slices.Clone(s.history)
}

// CountDispatch increments the gateway-bound dispatch counter.
func (s *Store) CountDispatch() {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.dispatched++
}

// Dispatched returns how many commands reached the gateway.
func (s *Store) Dispatched() int {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	return s.dispatched
}

func cloneChannels(channels []Channel) []Channel {
	if len(channels) == 0 {
		return nil
	}
	return slices.Clone(channels)
}
