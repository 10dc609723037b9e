package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	panelWidth = 30
	minWidth   = 40
	minHeight  = 8
)

// View implements tea.Model. A modal replaces the main frame entirely; the
// frame is redrawn once the modal is dismissed.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		// Degraded render, not an error: the loop keeps running.
		return "Error: Screen drawing failed, check terminal size."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderFrame()
}

// outputWidth is the width command output is wrapped to: the content area
// left of the status panel.
func (m Model) outputWidth() int {
	if !m.ready {
		return 80
	}
	w := m.width - panelWidth - 1
	if w < 20 {
		w = max(10, m.width-2)
	}
	return w
}

func (m Model) renderFrame() string {
	styles := m.theme.Styles()
	sep := styles.Border.Render(strings.Repeat("=", m.width-1))

	contentHeight := m.height - 5
	contentWidth := m.width - panelWidth - 1

	var leftLines []string
	if m.mode == modeHelp {
		leftLines = menuLines()
	} else if m.output != "" {
		leftLines = strings.Split(m.output, "\n")
	}

	panelLines := m.renderPanel(panelWidth)

	rows := make([]string, 0, contentHeight)
	for i := 0; i < contentHeight; i++ {
		var left, right string
		if i < len(leftLines) {
			left = clipLine(leftLines[i], contentWidth)
		}
		if i < len(panelLines) {
			right = panelLines[i]
		}
		rows = append(rows, runewidth.FillRight(left, contentWidth)+" "+right)
	}

	heightLabel := styles.Accent.Render(
		fmt.Sprintf("Cypherpunk Warp Height: %s", m.snapshot.BlockHeight))

	inputLine := m.input.View()
	if m.busy {
		inputLine += styles.Muted.Render("  (running...)")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Warp Node CLI"))
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, heightLabel))
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(inputLine)
	return b.String()
}

// renderPanel builds the right-hand status and balance panel from the
// latest snapshot.
func (m Model) renderPanel(width int) []string {
	styles := m.theme.Styles()
	snap := m.snapshot

	lines := []string{
		styles.Accent.Render("Wallet Balances"),
		styles.Border.Render(strings.Repeat("=", width-2)),
	}
	if snap.Balances.Failed() {
		lines = append(lines,
			styles.Text.Render("On-chain Balance: --"),
			styles.Text.Render("Lightning Balance: --"),
			styles.Danger.Render(truncate("Error: "+snap.Balances.Err, width)),
		)
	} else {
		lines = append(lines,
			styles.Text.Render(fmt.Sprintf("On-chain Balance: %d sat", snap.Balances.OnchainSats)),
			styles.Text.Render(fmt.Sprintf("Lightning Balance: %d sat", snap.Balances.LightningSats)),
		)
	}

	lines = append(lines,
		"",
		m.statusLine("Node Status", snap.NodeActive),
		m.statusLine("Wallet Status", snap.WalletActive),
		"",
		styles.Text.Render(fmt.Sprintf("Peers: %d", snap.PeerCount)),
		"",
		styles.Accent.Render("Channels:"),
	)
	for _, ch := range snap.Channels {
		lines = append(lines, styles.Text.Render("- "+truncate(ch.ShortID, width-2)))
	}
	return lines
}

func (m Model) statusLine(label string, active bool) string {
	styles := m.theme.Styles()
	if active {
		return styles.Text.Render(label+": ") + styles.Success.Render("Active")
	}
	return styles.Text.Render(label+": ") + styles.Danger.Render("Inactive")
}
