package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"planloop/internal/engine"
)

// RunBoard opens the interactive day board on the given store.
func RunBoard(store *engine.Store, out io.Writer) error {
	m := newBoardModel(store)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
