package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run blocks until the user quits or ctx is canceled. The initial theme follows
// the terminal background.
func Run(ctx context.Context, client GatewayClient) error {
	model := NewModel(ctx, client, lipgloss.HasDarkBackground())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
