package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// SearchKeys are the search screen key bindings.
var SearchKeys = struct {
	Submit, Up, Down key.Binding
}{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
}

// SubmitMsg carries a query chosen on the search screen.
type SubmitMsg struct {
	Query string
}

// SearchPanel is the query input with preset suggestions and session history.
type SearchPanel struct {
	input       textinput.Model
	suggestions []string
	recent      []history.Entry

	// selected is -1 while the input has focus, otherwise an index into
	// suggestions followed by recent.
	selected int

	banner string

	width  int
	height int
}

// NewSearchPanel creates the search screen.
func NewSearchPanel(suggestions []string) *SearchPanel {
	input := textinput.New()
	input.Placeholder = "Search for crypto analysis..."
	input.Prompt = "🔍 "
	input.PlaceholderStyle = styles.PlaceholderStyle
	input.CharLimit = 120
	input.Width = 48
	input.Focus()

	return &SearchPanel{
		input:       input,
		suggestions: suggestions,
		selected:    -1,
		width:       80,
	}
}

// Init initializes the panel.
func (p *SearchPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *SearchPanel) Update(msg tea.Msg) (*SearchPanel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Submit):
			return p, p.submit()

		case key.Matches(msg, SearchKeys.Down):
			if p.selected < p.itemCount()-1 {
				p.selected++
			}
			p.syncFocus()
			return p, nil

		case key.Matches(msg, SearchKeys.Up):
			if p.selected >= 0 {
				p.selected--
			}
			p.syncFocus()
			return p, nil
		}
	}

	if p.selected >= 0 {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// submit emits the selected item verbatim, or the typed text when it is
// not blank.
func (p *SearchPanel) submit() tea.Cmd {
	if p.selected >= 0 {
		return emit(SubmitMsg{Query: p.item(p.selected)})
	}
	if strings.TrimSpace(p.input.Value()) == "" {
		return nil
	}
	return emit(SubmitMsg{Query: p.input.Value()})
}

func (p *SearchPanel) itemCount() int {
	return len(p.suggestions) + len(p.recent)
}

func (p *SearchPanel) item(i int) string {
	if i < len(p.suggestions) {
		return p.suggestions[i]
	}
	return p.recent[i-len(p.suggestions)].Query
}

func (p *SearchPanel) syncFocus() {
	if p.selected < 0 {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

// Value returns the typed query text.
func (p *SearchPanel) Value() string {
	return p.input.Value()
}

// SetValue replaces the typed query text.
func (p *SearchPanel) SetValue(s string) {
	p.input.SetValue(s)
}

// Selected returns the highlighted list index, or -1 for the input.
func (p *SearchPanel) Selected() int {
	return p.selected
}

// SetBanner sets the error banner. An empty string hides it.
func (p *SearchPanel) SetBanner(s string) {
	p.banner = s
}

// Banner returns the current error banner.
func (p *SearchPanel) Banner() string {
	return p.banner
}

// SetRecent replaces the session history shown below the suggestions.
func (p *SearchPanel) SetRecent(entries []history.Entry) {
	p.recent = entries
	if p.selected >= p.itemCount() {
		p.selected = p.itemCount() - 1
		p.syncFocus()
	}
}

// Reset clears the input and moves focus back to it. The banner is kept.
func (p *SearchPanel) Reset() {
	p.input.Reset()
	p.selected = -1
	p.syncFocus()
}

// SetSize sets the panel dimensions.
func (p *SearchPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = min(max(width-16, 20), 64)
}

// View renders the panel.
func (p *SearchPanel) View() string {
	brand := lipgloss.JoinVertical(lipgloss.Center,
		styles.BrandStyle.Render("📈 CryptoScope"),
		styles.TaglineStyle.Render("AI-powered crypto sentiment & market analysis"),
	)

	inputStyle := styles.InputStyle
	if p.selected < 0 {
		inputStyle = styles.FocusedInputStyle
	}
	search := inputStyle.Render(p.input.View())
	if strings.TrimSpace(p.input.Value()) != "" {
		search = lipgloss.JoinHorizontal(lipgloss.Center, search, " ", styles.ButtonStyle.Render("Analyze"))
	}

	sections := []string{brand, "", search}
	if p.banner != "" {
		sections = append(sections, "", styles.ErrorBannerStyle.Render(p.banner))
	}

	sections = append(sections, "", styles.HeaderStyle.Render("Recent Analyses"))
	for i, s := range p.suggestions {
		sections = append(sections, p.renderItem(i, "🕘 "+s))
	}

	if len(p.recent) > 0 {
		sections = append(sections, "", styles.HeaderStyle.Render("History"))
		for i, e := range p.recent {
			label := e.Query
			switch {
			case e.Failed:
				label += "  " + styles.NegativeStyle.Render("✗")
			case e.Ticker != "":
				label += "  " + styles.MutedStyle.Render(e.Ticker)
			}
			sections = append(sections, p.renderItem(len(p.suggestions)+i, "↺ "+label))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if p.width > 0 && p.height > 0 {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (p *SearchPanel) renderItem(i int, label string) string {
	if i == p.selected {
		return styles.SelectedRowStyle.Render("› " + label)
	}
	return styles.RowStyle.Render("  " + label)
}
