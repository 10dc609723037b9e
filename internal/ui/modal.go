package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a nested input state that captures all keys until dismissed.
// Update returns the updated modal, an optional command to run on submit, and
// whether the modal is finished. While a modal is open the main frame is not
// redrawn; the pollers keep running and their dirty flag is honored once
// control returns to the main loop.
type Modal interface {
	Update(msg tea.KeyMsg) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

const modalMaxWidth = 76

func modalBox(theme Theme, width, height int, title, body string) string {
	styles := theme.Styles()
	boxWidth := min(modalMaxWidth, width-4)
	if boxWidth < 20 {
		return styles.Danger.Render("Terminal too small")
	}

	content := styles.Accent.Render(title) + "\n\n" + body
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// displayModal shows read-only text and dismisses on any key.
type displayModal struct {
	title string
	body  string
}

func newDisplayModal(title, body string) *displayModal {
	return &displayModal{title: title, body: body}
}

func (d *displayModal) Update(tea.KeyMsg) (Modal, tea.Cmd, bool) {
	return d, nil, true
}

func (d *displayModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	boxWidth := min(modalMaxWidth, width-4)
	body := wrapToWidth(d.body, boxWidth-6) + "\n\n" +
		styles.Muted.Render("Press any key to close")
	return modalBox(theme, width, height, d.title, body)
}

// payModal collects a multi-line invoice string terminated by a blank line.
type payModal struct {
	ta     textarea.Model
	submit func(string) tea.Cmd
}

func newPayModal(width int, submit func(string) tea.Cmd) *payModal {
	ta := textarea.New()
	ta.Placeholder = "bolt11 invoice"
	ta.ShowLineNumbers = false
	ta.SetWidth(min(modalMaxWidth, width-4) - 6)
	ta.SetHeight(6)
	ta.Focus()
	return &payModal{ta: ta, submit: submit}
}

func (p *payModal) Update(msg tea.KeyMsg) (Modal, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return p, nil, true
	case tea.KeyEnter:
		// Enter on a blank final line submits the collected invoice.
		lines := strings.Split(p.ta.Value(), "\n")
		if strings.TrimSpace(lines[len(lines)-1]) == "" {
			invoice := collapseLines(p.ta.Value())
			if invoice == "" {
				return p, nil, true
			}
			return p, p.submit(invoice), true
		}
	}
	var cmd tea.Cmd
	p.ta, cmd = p.ta.Update(msg)
	return p, cmd, false
}

func (p *payModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := p.ta.View() + "\n\n" +
		styles.Muted.Render("Finish with a blank line to pay, esc to cancel")
	return modalBox(theme, width, height, "Pay Invoice", body)
}

// collapseLines joins the pasted lines of an invoice into one string.
func collapseLines(value string) string {
	var b strings.Builder
	for _, line := range strings.Split(value, "\n") {
		b.WriteString(strings.TrimSpace(line))
	}
	return b.String()
}

// fetchModal collects a single-line offer string. The input scrolls
// horizontally once the offer exceeds the visible width.
type fetchModal struct {
	ti     textinput.Model
	submit func(string) tea.Cmd
}

func newFetchModal(width int, submit func(string) tea.Cmd) *fetchModal {
	ti := textinput.New()
	ti.Placeholder = "lno1 offer"
	ti.Prompt = "> "
	ti.Width = min(modalMaxWidth, width-4) - 8
	ti.Focus()
	return &fetchModal{ti: ti, submit: submit}
}

func (f *fetchModal) Update(msg tea.KeyMsg) (Modal, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return f, nil, true
	case tea.KeyEnter:
		offer := strings.TrimSpace(f.ti.Value())
		if offer == "" {
			return f, nil, true
		}
		return f, f.submit(offer), true
	}
	var cmd tea.Cmd
	f.ti, cmd = f.ti.Update(msg)
	return f, cmd, false
}

func (f *fetchModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := f.ti.View() + "\n\n" +
		styles.Muted.Render("Enter to fetch, esc to cancel")
	return modalBox(theme, width, height, "Fetch Invoice", body)
}

// wrapToWidth hard-wraps text for modal display.
func wrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > width {
			out = append(out, line[:width])
			line = line[width:]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
