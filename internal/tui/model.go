package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vendorrag/internal/domain"
)

// QueryPort is the TUI-facing subset of the pipeline service.
type QueryPort interface {
	Query(query string, topK int) (domain.Answer, error)
}

// Model is the Bubble Tea model for the interactive query loop.
type Model struct {
	service QueryPort
	topK    int
	input   textinput.Model
	view    viewport.Model
	answer  *domain.Answer
	status  string
	ready   bool
}

// New creates a new TUI model instance.
func New(service QueryPort, corpusSize, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service: service,
		topK:    topK,
		input:   ti,
		view:    vp,
		status:  fmt.Sprintf("Indexed %d documents. Type to search.", corpusSize),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + query box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.view.Width = max(20, msg.Width)
		m.view.Height = max(3, vh-ah)
		m.view.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				answer, err := m.service.Query(q, m.topK)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.answer = nil
				} else {
					m.status = fmt.Sprintf("Answer for %q (%d results)", q, answer.Results)
					m.answer = &answer
				}
				m.view.SetContent(m.renderAnswer())
				m.view.GotoTop()
				return m, nil
			}
		case "down":
			m.view.LineDown(1)
			return m, nil
		case "up":
			m.view.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Vendor Procurement Search")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.view.View())
	return header + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "No answer yet."
	}
	var b strings.Builder
	b.WriteString(m.answer.Text)
	b.WriteString("\n\n")
	b.WriteString(sourceHeadStyle.Render("Sources:"))
	b.WriteString("\n")
	if len(m.answer.Sources) == 0 {
		b.WriteString("None\n")
	}
	for _, src := range m.answer.Sources {
		b.WriteString("- " + src + "\n")
	}
	return b.String()
}

var (
	answerBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sourceHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
