package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"questchronicles/internal/engine"
)

// RunBattle plays an interactive battle until it ends and the player quits
// the screen. The battle's character is mutated in place.
func RunBattle(ctx context.Context, b *engine.Battle, out io.Writer) (engine.Result, error) {
	m := newBattleModel(ctx, b)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return b.Result(), err
	}
	return b.Result(), nil
}
