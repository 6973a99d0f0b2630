// Package ui is the terminal submission form: a repository URL input, a request
// to the gateway and an editable view of the returned documentation.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codedoc/internal/domain/entity"
)

const (
	MsgEmptyURL          = "Please enter a GitHub repository URL"
	MsgGenerateFailed    = "Failed to generate documentation. Please try again."
	MissingDocumentation = "# Documentation could not be generated"
)

// State is the lifecycle of a single submission.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GatewayClient submits a repository URL to the documentation gateway.
type GatewayClient interface {
	Generate(ctx context.Context, repoURL string) (entity.GenerationResult, error)
}

type focusArea int

const (
	focusURL focusArea = iota
	focusEditor
)

type generatedMsg struct {
	result entity.GenerationResult
}

type generateFailedMsg struct {
	repoURL string
	err     error
}

type Model struct {
	ctx    context.Context
	client GatewayClient

	state    State
	errMsg   string
	fileName string

	input   textinput.Model
	editor  textarea.Model
	spinner spinner.Model
	focus   focusArea

	dark  bool
	theme theme
	width int
}

func NewModel(ctx context.Context, client GatewayClient, dark bool) Model {
	input := textinput.New()
	input.Placeholder = "https://github.com/username/repository"
	input.Prompt = "> "
	input.CharLimit = 2048
	input.Width = 72
	input.Focus()

	editor := textarea.New()
	editor.Placeholder = "Your documentation will appear here..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(80)
	editor.SetHeight(18)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		client:  client,
		state:   StateIdle,
		input:   input,
		editor:  editor,
		spinner: sp,
		focus:   focusURL,
		dark:    dark,
		theme:   newTheme(dark),
	}
}

func (m Model) State() State { return m.state }

// Error is the inline message shown under the input, or "".
func (m Model) Error() string { return m.errMsg }

// Documentation is the current, possibly user-edited, editor content.
func (m Model) Documentation() string { return m.editor.Value() }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 4; w > 20 {
			m.input.Width = w - 4
			m.editor.SetWidth(w)
		}
		if h := msg.Height - 12; h > 5 {
			m.editor.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			m.dark = !m.dark
			m.theme = newTheme(m.dark)
			return m, nil
		case "tab", "shift+tab":
			return m.toggleFocus(), nil
		case "enter":
			if m.focus == focusURL {
				return m.submit()
			}
		}

	case generatedMsg:
		m.state = StateSucceeded
		m.fileName = msg.result.FileName
		doc := msg.result.Documentation
		if strings.TrimSpace(doc) == "" {
			doc = MissingDocumentation
		}
		m.editor.SetValue(doc)
		return m, nil

	case generateFailedMsg:
		m.state = StateFailed
		m.fileName = ""
		m.errMsg = MsgGenerateFailed
		m.editor.SetValue(PlaceholderDocument(msg.repoURL))
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusURL {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusURL {
		m.focus = focusEditor
		m.input.Blur()
		m.editor.Focus()
		return m
	}
	m.focus = focusURL
	m.editor.Blur()
	m.input.Focus()
	return m
}

// submit starts one gateway request. It is a no-op while a request is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StateLoading {
		return m, nil
	}

	repoURL := strings.TrimSpace(m.input.Value())
	if repoURL == "" {
		m.errMsg = MsgEmptyURL
		return m, nil
	}

	m.state = StateLoading
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, m.generate(repoURL))
}

func (m Model) generate(repoURL string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		res, err := client.Generate(ctx, repoURL)
		if err != nil {
			return generateFailedMsg{repoURL: repoURL, err: err}
		}
		return generatedMsg{result: res}
	}
}

func (m Model) View() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.title.Render("CoDe") + t.accent.Render("HuB"))
	sb.WriteString("\n\n")
	sb.WriteString(t.label.Render("GitHub file URL"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	switch {
	case m.state == StateLoading:
		sb.WriteString(m.spinner.View() + " " + t.label.Render("Generating documentation..."))
	case m.errMsg != "":
		sb.WriteString(t.errorMsg.Render(m.errMsg))
	case m.state == StateSucceeded && m.fileName != "":
		sb.WriteString(t.success.Render("Documentation for " + m.fileName))
	}
	sb.WriteString("\n\n")

	sb.WriteString(t.border.Render(m.editor.View()))
	sb.WriteString("\n")

	mode := "light"
	if m.dark {
		mode = "dark"
	}
	sb.WriteString(t.help.Render(fmt.Sprintf(
		"enter submit • tab switch field • ctrl+t theme (%s) • esc quit", mode)))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
	}
	return sb.String()
}

// PlaceholderDocument is the starter document shown when generation fails.
func PlaceholderDocument(repoURL string) string {
	return "# Documentation for " + repoURL + "\n\n" +
		"Start writing your documentation here...\n\n" +
		"## Features\n\n" +
		"- Feature one\n" +
		"- Feature two\n" +
		"- Feature three\n\n" +
		"## Installation\n\n" +
		"```bash\nnpm install my-package\n```\n\n" +
		"## Usage\n\n" +
		"```javascript\n" +
		"import { myFunction } from 'my-package';\n\n" +
		"// Use the function\n" +
		"myFunction();\n" +
		"```"
}
