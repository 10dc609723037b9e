package state

import (
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_DefaultsAreInactive(t *testing.T) {
	s := NewStore()

	snap := s.Snapshot()
	if snap.NodeActive || snap.WalletActive {
		t.Fatalf("fresh store active: %+v", snap)
	}
	if snap.BlockHeight != HeightUnknown {
		t.Fatalf("BlockHeight = %q, want %q", snap.BlockHeight, HeightUnknown)
	}
	if s.Dirty() {
		t.Fatal("fresh store is dirty")
	}
}

func TestStore_SetNodeStatusReportsChange(t *testing.T) {
	s := NewStore()

	if !s.SetNodeStatus(true, "850000", 4) {
		t.Fatal("first update reported no change")
	}
	if s.SetNodeStatus(true, "850000", 4) {
		t.Fatal("identical update reported a change")
	}
	if !s.SetNodeStatus(true, "850000", 5) {
		t.Fatal("peer count change not reported")
	}
	if !s.SetNodeStatus(true, "850001", 5) {
		t.Fatal("height change not reported")
	}
	if !s.SetNodeStatus(false, "850001", 5) {
		t.Fatal("liveness change not reported")
	}
}

func TestStore_SetWalletStatusComparesStructurally(t *testing.T) {
	s := NewStore()
	chans := []Channel{{ShortID: "835x1x0"}, {ShortID: "836x2x1"}}

	if !s.SetWalletStatus(true, chans, Balances{OnchainSats: 10}) {
		t.Fatal("first update reported no change")
	}
	same := []Channel{{ShortID: "835x1x0"}, {ShortID: "836x2x1"}}
	if s.SetWalletStatus(true, same, Balances{OnchainSats: 10}) {
		t.Fatal("structurally equal update reported a change")
	}
	swapped := []Channel{{ShortID: "836x2x1"}, {ShortID: "835x1x0"}}
	if !s.SetWalletStatus(true, swapped, Balances{OnchainSats: 10}) {
		t.Fatal("reordered channel list not reported; comparison must be structural, not length-based")
	}
	if !s.SetWalletStatus(true, swapped, Balances{OnchainSats: 11}) {
		t.Fatal("balance change not reported")
	}
}

func TestStore_SnapshotIsIndependentCopy(t *testing.T) {
	s := NewStore()
	s.SetWalletStatus(true, []Channel{{ShortID: "835x1x0"}}, Balances{})

	snap := s.Snapshot()
	snap.Channels[0].ShortID = "mutated"

	if got := s.Snapshot().Channels[0].ShortID; got != "835x1x0" {
		t.Fatalf("stored channel = %q, want %q", got, "835x1x0")
	}
}

func TestStore_DirtyConsumeSemantics(t *testing.T) {
	s := NewStore()

	if s.ConsumeDirty() {
		t.Fatal("consumed a flag that was never raised")
	}
	s.MarkDirty()
	if !s.ConsumeDirty() {
		t.Fatal("raised flag not consumable")
	}
	if s.ConsumeDirty() {
		t.Fatal("flag survived consumption")
	}
}

func TestStore_BalancesErrorMarkerIsShared(t *testing.T) {
	s := NewStore()
	s.SetWalletStatus(false, nil, Balances{Err: "error executing listfunds: timed out"})

	snap := s.Snapshot()
	if !snap.Balances.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	// One marker for both balances, by construction: the numeric fields are
	// not independently valid when Err is set.
	if snap.Balances.OnchainSats != 0 || snap.Balances.LightningSats != 0 {
		t.Fatalf("numeric balances alongside error marker: %+v", snap.Balances)
	}
}

// TestStore_NoTornSnapshots hammers the store from two writers and a reader
// and checks every snapshot is internally consistent: each writer always
// writes a matched set of values, so a mixed set means a torn read.
func TestStore_NoTornSnapshots(t *testing.T) {
	s := NewStore()
	const iterations = 2000

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			// Height and peer count move in lockstep.
			s.SetNodeStatus(true, strconv.Itoa(i), i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			chans := []Channel{{ShortID: strconv.Itoa(i)}}
			s.SetWalletStatus(true, chans, Balances{OnchainSats: int64(i), LightningSats: int64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			snap := s.Snapshot()
			if snap.BlockHeight != HeightUnknown && snap.BlockHeight != strconv.Itoa(snap.PeerCount) {
				t.Errorf("torn node fields: height %q, peers %d", snap.BlockHeight, snap.PeerCount)
				return
			}
			if snap.Balances.OnchainSats != snap.Balances.LightningSats {
				t.Errorf("torn wallet fields: %+v", snap.Balances)
				return
			}
			if len(snap.Channels) == 1 && snap.Channels[0].ShortID != strconv.FormatInt(snap.Balances.OnchainSats, 10) {
				t.Errorf("channels from a different cycle than balances: %v vs %d",
					snap.Channels, snap.Balances.OnchainSats)
				return
			}
		}
	}()

	wg.Wait()
}

func TestStore_HistoryAndDispatchCount(t *testing.T) {
	s := NewStore()

	s.RecordCommand("getinfo")
	s.RecordCommand("help")
	s.CountDispatch()

	if diff := cmp.Diff([]string{"getinfo", "help"}, s.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if s.Dispatched() != 1 {
		t.Fatalf("Dispatched = %d, want 1", s.Dispatched())
	}

	// The returned slice is a copy.
	s.History()[0] = "mutated"
	if s.History()[0] != "getinfo" {
		t.Fatal("History returned shared backing storage")
	}
}
