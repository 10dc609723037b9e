// Package command classifies operator input lines and dispatches them to the
// node gateway: a small set of structured builtins with dedicated argument
// handling and modal prompts, then generic pass-through for everything else.
package command

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/curly60e/warp/internal/gateway"
	"github.com/curly60e/warp/internal/state"
)

// Action tells the render loop what to do with a dispatch outcome.
type Action int

const (
	// ActionNone means nothing changed (empty input).
	ActionNone Action = iota
	// ActionOutput carries text for the output pane.
	ActionOutput
	// ActionQuit requests process shutdown.
	ActionQuit
	// ActionToggleHelp toggles the help menu view.
	ActionToggleHelp
	// ActionPromptPay opens the multi-line invoice input dialog.
	ActionPromptPay
	// ActionPromptFetch opens the single-line offer input dialog.
	ActionPromptFetch
)

// Outcome is the result of classifying and executing one input line.
type Outcome struct {
	Action Action
	Output string
	// Invoice, when non-empty, is a bolt11 string to show in a read-only
	// dialog before the output pane is updated.
	Invoice string
}

// Usage strings surfaced on builtin arity underflow. No gateway call is made.
const (
	usageOpenChannel  = "Error: Usage: openchannel <peer_id> <amount> [feerate]"
	usageCloseChannel = "Error: Usage: closechannel <channel_id> [force]"
	usageInvoice      = "Error: Usage: invoice <amount_sat> <label> <description>"
)

// Dispatcher routes input lines to the gateway and records history.
type Dispatcher struct {
	gw     gateway.Runner
	store  *state.Store
	logger *zap.Logger
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher(gw gateway.Runner, store *state.Store, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{gw: gw, store: store, logger: logger}
}

// Dispatch classifies one trimmed input line and executes it. Empty input is
// a no-op; every other line lands in the command history regardless of
// outcome. Builtins validate arity before any gateway call. width is the
// terminal width used for output wrapping.
func (d *Dispatcher) Dispatch(ctx context.Context, line string, width int) Outcome {
	if line == "" {
		return Outcome{Action: ActionNone}
	}
	d.store.RecordCommand(line)

	tokens := strings.Fields(line)
	name, args := tokens[0], tokens[1:]

	switch name {
	case "quit":
		return Outcome{Action: ActionQuit}

	case "help":
		if len(args) == 0 {
			return Outcome{Action: ActionToggleHelp}
		}

	case "openchannel":
		if len(args) < 2 {
			return Outcome{Action: ActionOutput, Output: usageOpenChannel}
		}
		forward := args[:2:2]
		if len(args) > 2 {
			forward = append(forward, args[2])
		}
		return d.run(ctx, "fundchannel", forward, width)

	case "closechannel":
		if len(args) < 1 {
			return Outcome{Action: ActionOutput, Output: usageCloseChannel}
		}
		forward := args[:1:1]
		if len(args) > 1 && strings.EqualFold(args[1], "force") {
			forward = append(forward, "force")
		}
		return d.run(ctx, "close", forward, width)

	case "invoice":
		if len(args) < 3 {
			return Outcome{Action: ActionOutput, Output: usageInvoice}
		}
		amount, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Outcome{Action: ActionOutput, Output: usageInvoice}
		}
		msat := strconv.FormatInt(amount*1000, 10)
		description := strings.Join(args[2:], " ")
		res := d.execute(ctx, "invoice", []string{msat, args[1], description})
		return Outcome{
			Action:  ActionOutput,
			Output:  FormatResult(res, width),
			Invoice: extractInvoice(res),
		}

	case "pay":
		if len(args) == 0 {
			return Outcome{Action: ActionPromptPay}
		}

	case "fetchinvoice":
		if len(args) == 0 {
			return Outcome{Action: ActionPromptFetch}
		}
	}

	return d.run(ctx, name, args, width)
}

// PayInvoice issues the pay call collected by the multi-line dialog.
func (d *Dispatcher) PayInvoice(ctx context.Context, invoice string, width int) Outcome {
	return d.run(ctx, "pay", []string{invoice}, width)
}

// FetchOffer issues the fetchinvoice call collected by the offer dialog.
func (d *Dispatcher) FetchOffer(ctx context.Context, offer string, width int) Outcome {
	return d.run(ctx, "fetchinvoice", []string{offer}, width)
}

// History returns the recorded input lines, oldest first.
func (d *Dispatcher) History() []string {
	return d.store.History()
}

func (d *Dispatcher) run(ctx context.Context, command string, args []string, width int) Outcome {
	res := d.execute(ctx, command, args)
	return Outcome{Action: ActionOutput, Output: FormatResult(res, width)}
}

func (d *Dispatcher) execute(ctx context.Context, command string, args []string) gateway.Result {
	d.store.CountDispatch()
	d.logger.Info("dispatching command",
		zap.String("command", command),
		zap.Int("args", len(args)))

	res := d.gw.Execute(ctx, command, args)
	if !res.OK() {
		d.logger.Warn("command failed",
			zap.String("command", command),
			zap.String("failure", res.Message()))
	}
	return res
}

func extractInvoice(res gateway.Result) string {
	obj, ok := res.Object()
	if !ok {
		return ""
	}
	bolt11, _ := obj["bolt11"].(string)
	return bolt11
}
