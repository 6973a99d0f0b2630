package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codedoc/internal/domain/entity"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	result entity.GenerationResult
	err    error
}

func (f *fakeGateway) Generate(_ context.Context, repoURL string) (entity.GenerationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, repoURL)
	return f.result, f.err
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// drain runs cmd, expanding batches, and feeds every resulting message except
// spinner ticks back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case spinner.TickMsg:
	default:
		m, _ = update(t, m, msg)
	}
	return m
}

func newTestModel(client GatewayClient) Model {
	return NewModel(context.Background(), client, false)
}

func TestSubmit_EmptyURL(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(gw)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, "Please enter a GitHub repository URL", m.Error())
	assert.Empty(t, gw.Calls())

	m = typeText(t, m, "   ")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, MsgEmptyURL, m.Error())
}

func TestSubmit_Success(t *testing.T) {
	gw := &fakeGateway{result: entity.GenerationResult{
		FileName:      "app.js",
		OriginalCode:  "let a = 1",
		Documentation: "# app.js\n\nSets a.",
	}}
	m := newTestModel(gw)
	m = typeText(t, m, "https://github.com/user/repo/blob/main/app.js")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, m.State())
	assert.Empty(t, m.Error())

	m = drain(t, m, cmd)

	assert.Equal(t, StateSucceeded, m.State())
	assert.Equal(t, "# app.js\n\nSets a.", m.Documentation())
	assert.Equal(t, []string{"https://github.com/user/repo/blob/main/app.js"}, gw.Calls())
	assert.Contains(t, m.View(), "Documentation for app.js")
}

func TestSubmit_BlankDocumentation(t *testing.T) {
	gw := &fakeGateway{result: entity.GenerationResult{FileName: "a.go", Documentation: "  "}}
	m := typeText(t, newTestModel(gw), "https://github.com/u/r/blob/main/a.go")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Equal(t, StateSucceeded, m.State())
	assert.Equal(t, "# Documentation could not be generated", m.Documentation())
}

func TestSubmit_Failure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("gateway returned status 500")}
	url := "https://github.com/user/repo/blob/main/gone.js"
	m := typeText(t, newTestModel(gw), url)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, "Failed to generate documentation. Please try again.", m.Error())
	assert.Equal(t, PlaceholderDocument(url), m.Documentation())
	assert.True(t, strings.HasPrefix(m.Documentation(), "# Documentation for "+url+"\n\n"))
	assert.Contains(t, m.View(), MsgGenerateFailed)
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	gw := &fakeGateway{result: entity.GenerationResult{Documentation: "doc"}}
	m := typeText(t, newTestModel(gw), "https://github.com/u/r/blob/main/a.go")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)
	assert.Equal(t, StateLoading, m.State())

	m = drain(t, m, first)
	assert.Len(t, gw.Calls(), 1)
	assert.Equal(t, StateSucceeded, m.State())
}

func TestResubmitAfterFailureClearsError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("down")}
	m := typeText(t, newTestModel(gw), "https://github.com/u/r/blob/main/a.go")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)
	require.Equal(t, StateFailed, m.State())

	gw.mu.Lock()
	gw.err = nil
	gw.result = entity.GenerationResult{FileName: "a.go", Documentation: "fixed"}
	gw.mu.Unlock()

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateLoading, m.State())
	assert.Empty(t, m.Error())

	m = drain(t, m, cmd)
	assert.Equal(t, StateSucceeded, m.State())
	assert.Equal(t, "fixed", m.Documentation())
}

func TestEditorIsEditable(t *testing.T) {
	gw := &fakeGateway{result: entity.GenerationResult{Documentation: "# doc"}}
	m := typeText(t, newTestModel(gw), "https://github.com/u/r/blob/main/a.go")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, " edited")

	assert.Equal(t, "# doc edited", m.Documentation())
	assert.Len(t, gw.Calls(), 1)

	// enter in the editor inserts a newline instead of submitting
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateSucceeded, m.State())
	assert.Len(t, gw.Calls(), 1)
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(&fakeGateway{})
	require.False(t, m.dark)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Nil(t, cmd)
	assert.True(t, m.dark)
	assert.Contains(t, m.View(), "theme (dark)")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.dark)
	assert.Equal(t, StateIdle, m.State())
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := update(t, newTestModel(&fakeGateway{}), tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateLoading, "loading"},
		{StateSucceeded, "succeeded"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
