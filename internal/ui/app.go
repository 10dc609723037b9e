// Package ui implements warp's render loop: a Bubble Tea model with an
// explicit state machine over normal input, the help menu, and the modal
// dialogs, fed by the poller-maintained state store.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/curly60e/warp/internal/command"
	"github.com/curly60e/warp/internal/prefs"
	"github.com/curly60e/warp/internal/state"
)

// mode is the render loop's state machine position.
type mode int

const (
	modeNormal mode = iota
	modeHelp
	modeModalDisplay
	modeModalPay
	modeModalFetch
)

// defaultTick bounds how long a quiet loop waits before checking the dirty
// flag again. Short enough that poller changes show up promptly, long enough
// not to spin.
const defaultTick = 100 * time.Millisecond

// Options configure the UI runtime.
type Options struct {
	Context    context.Context
	Cancel     context.CancelFunc
	Store      *state.Store
	Dispatcher *command.Dispatcher
	ThemeName  string
	PrefsPath  string
	Logger     *zap.Logger
	TickEvery  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	store      *state.Store
	dispatcher *command.Dispatcher
	logger     *zap.Logger

	keys      keyMap
	theme     Theme
	prefsPath string
	tick      time.Duration

	width  int
	height int
	ready  bool

	mode     mode
	modal    Modal
	input    textinput.Model
	output   string
	snapshot state.NodeState

	// history recall; -1 means the live input buffer
	histIdx int
	draft   string

	// busy blocks further submissions while a command is in flight
	busy bool
}

// New creates the UI model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cancel := opts.Cancel
	if cancel == nil {
		cancel = func() {}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tick := opts.TickEvery
	if tick <= 0 {
		tick = defaultTick
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	return Model{
		ctx:        ctx,
		cancel:     cancel,
		store:      opts.Store,
		dispatcher: opts.Dispatcher,
		logger:     logger,
		keys:       defaultKeyMap(),
		theme:      GetTheme(opts.ThemeName),
		prefsPath:  opts.PrefsPath,
		tick:       tick,
		input:      input,
		snapshot:   opts.Store.Snapshot(),
		histIdx:    -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.tick))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(10, m.width-4)
		return m, nil

	case tickMsg:
		// The bounded wait: each tick checks whether a poller observed a
		// change since the last redraw.
		if m.store.ConsumeDirty() {
			m.snapshot = m.store.Snapshot()
		}
		return m, tickCmd(m.tick)

	case outcomeMsg:
		return m.handleOutcome(command.Outcome(msg))

	case tea.KeyMsg:
		if m.modal != nil {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes input in the normal and help-menu states.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", zap.Error(err))
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		return m.recallPrev(), nil

	case key.Matches(msg, m.keys.HistoryNext):
		return m.recallNext(), nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input buffer to the dispatcher and resets it. A command
// already in flight blocks further submissions; typing stays live.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.histIdx = -1
	m.draft = ""
	if line == "" {
		return m, nil
	}
	if line != "help" && m.mode == modeHelp {
		m.mode = modeNormal
	}
	m.busy = true
	return m, m.dispatchCmd(line)
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c still exits from inside a dialog.
	if msg.Type == tea.KeyCtrlC {
		m.cancel()
		return m, tea.Quit
	}

	modal, cmd, done := m.modal.Update(msg)
	m.modal = modal
	if done {
		m.modal = nil
		m.mode = modeNormal
		// Honor any dirty flag accumulated while the dialog was open.
		if m.store.ConsumeDirty() {
			m.snapshot = m.store.Snapshot()
		}
		if cmd != nil {
			// The dialog submitted a gateway call.
			m.busy = true
		}
	}
	return m, cmd
}

func (m Model) handleOutcome(out command.Outcome) (tea.Model, tea.Cmd) {
	m.busy = false
	switch out.Action {
	case command.ActionQuit:
		m.cancel()
		return m, tea.Quit

	case command.ActionToggleHelp:
		if m.mode == modeHelp {
			m.mode = modeNormal
		} else {
			m.mode = modeHelp
		}

	case command.ActionPromptPay:
		m.modal = newPayModal(m.width, m.paySubmit())
		m.mode = modeModalPay

	case command.ActionPromptFetch:
		m.modal = newFetchModal(m.width, m.fetchSubmit())
		m.mode = modeModalFetch

	case command.ActionOutput:
		m.mode = modeNormal
		m.output = out.Output
		if out.Invoice != "" {
			m.modal = newDisplayModal("Invoice", out.Invoice)
			m.mode = modeModalDisplay
		}
		if m.store.ConsumeDirty() {
			m.snapshot = m.store.Snapshot()
		}
	}
	return m, nil
}

func (m Model) recallPrev() Model {
	history := m.dispatcher.History()
	if len(history) == 0 {
		return m
	}
	if m.histIdx == -1 {
		m.draft = m.input.Value()
		m.histIdx = len(history) - 1
	} else if m.histIdx > 0 {
		m.histIdx--
	}
	m.input.SetValue(history[m.histIdx])
	m.input.CursorEnd()
	return m
}

func (m Model) recallNext() Model {
	if m.histIdx == -1 {
		return m
	}
	history := m.dispatcher.History()
	m.histIdx++
	if m.histIdx >= len(history) {
		m.histIdx = -1
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(history[m.histIdx])
	}
	m.input.CursorEnd()
	return m
}

// Messages

type tickMsg time.Time

type outcomeMsg command.Outcome

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) dispatchCmd(line string) tea.Cmd {
	ctx, d, width := m.ctx, m.dispatcher, m.outputWidth()
	return func() tea.Msg {
		return outcomeMsg(d.Dispatch(ctx, line, width))
	}
}

func (m Model) paySubmit() func(string) tea.Cmd {
	ctx, d, width := m.ctx, m.dispatcher, m.outputWidth()
	return func(invoice string) tea.Cmd {
		return func() tea.Msg {
			return outcomeMsg(d.PayInvoice(ctx, invoice, width))
		}
	}
}

func (m Model) fetchSubmit() func(string) tea.Cmd {
	ctx, d, width := m.ctx, m.dispatcher, m.outputWidth()
	return func(offer string) tea.Cmd {
		return func() tea.Msg {
			return outcomeMsg(d.FetchOffer(ctx, offer, width))
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if err != nil && opts.Context != nil && opts.Context.Err() != nil {
		// Cancellation from the signal handler or the quit command is a
		// clean shutdown, not a program failure.
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
	}
	return err
}
