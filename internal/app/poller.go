package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/curly60e/warp/internal/gateway"
	"github.com/curly60e/warp/internal/state"
)

const defaultPollInterval = 10 * time.Second

// Pollers refresh the node state from the gateway on a fixed cadence. The
// node poll and the wallet poll run independently; each raises the store's
// dirty flag when its slice of the state changed.
type Pollers struct {
	gw       gateway.Runner
	store    *state.Store
	interval time.Duration
	logger   *zap.Logger
}

// NewPollers builds the poller pair.
func NewPollers(gw gateway.Runner, store *state.Store, interval time.Duration, logger *zap.Logger) *Pollers {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pollers{gw: gw, store: store, interval: interval, logger: logger}
}

// Start launches both pollers. They poll once immediately, then on every
// tick, and exit when ctx is cancelled. Wait on the returned group after
// cancelling to confirm both have stopped.
func (p *Pollers) Start(ctx context.Context) *errgroup.Group {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { p.loop(ctx, p.pollNode); return nil })
	g.Go(func() error { p.loop(ctx, p.pollWallet); return nil })
	return g
}

func (p *Pollers) loop(ctx context.Context, poll func(context.Context)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pollNode refreshes liveness, block height, and peer count from getinfo.
// Gateway failures degrade to an inactive node, never to a process error.
func (p *Pollers) pollNode(ctx context.Context) {
	res := p.gw.Execute(ctx, "getinfo", nil)

	active := false
	height := state.HeightError
	peers := 0
	if obj, ok := res.Object(); ok {
		active = true
		height = state.HeightUnknown
		if h, ok := intField(obj, "blockheight"); ok {
			height = strconv.FormatInt(h, 10)
		}
		if n, ok := intField(obj, "num_peers"); ok {
			peers = int(n)
		}
	} else if !res.OK() {
		p.logger.Warn("node status poll failed", zap.String("failure", res.Message()))
	}

	if p.store.SetNodeStatus(active, height, peers) {
		p.store.MarkDirty()
	}
}

// pollWallet refreshes wallet liveness, the channel list, and both balances
// from listfunds. A failed query marks both balances with the same error;
// they are never half stale.
func (p *Pollers) pollWallet(ctx context.Context) {
	res := p.gw.Execute(ctx, "listfunds", nil)

	active := false
	var channels []state.Channel
	var balances state.Balances
	switch obj, isObj := res.Object(); {
	case !res.OK():
		balances.Err = res.Message()
		p.logger.Warn("wallet status poll failed", zap.String("failure", res.Message()))
	case isObj:
		if _, has := obj["outputs"]; has {
			active = true
			channels = parseChannels(obj["channels"])
		}
		balances = computeBalances(obj)
	default:
		balances.Err = "unexpected response from listfunds"
	}

	if p.store.SetWalletStatus(active, channels, balances) {
		p.store.MarkDirty()
	}
}

func parseChannels(raw any) []state.Channel {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	channels := make([]state.Channel, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		shortID, _ := obj["short_channel_id"].(string)
		if shortID == "" {
			shortID = "unknown"
		}
		channels = append(channels, state.Channel{ShortID: shortID})
	}
	if len(channels) == 0 {
		return nil
	}
	return channels
}

// computeBalances sums the listed funds: on-chain over unspent outputs,
// lightning over each channel's locally owned amount. Milli-sat sums are
// floor-divided into sats once at the end.
func computeBalances(obj map[string]any) state.Balances {
	var onchainMsat, lightningMsat int64
	if outputs, ok := obj["outputs"].([]any); ok {
		for _, out := range outputs {
			onchainMsat += msatField(out, "amount_msat")
		}
	}
	if channels, ok := obj["channels"].([]any); ok {
		for _, ch := range channels {
			lightningMsat += msatField(ch, "our_amount_msat")
		}
	}
	return state.Balances{
		OnchainSats:   onchainMsat / 1000,
		LightningSats: lightningMsat / 1000,
	}
}

func intField(obj map[string]any, key string) (int64, bool) {
	n, ok := obj[key].(float64)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

// msatField reads a milli-sat amount that lightning-cli encodes either as a
// bare number or as a "1234msat" string depending on version.
func msatField(v any, key string) int64 {
	obj, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	switch n := obj[key].(type) {
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSuffix(n, "msat"), 10, 64)
		if err == nil {
			return parsed
		}
	}
	return 0
}
