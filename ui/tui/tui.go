package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

// Chat is the conversation handle driven by the TUI.
type Chat interface {
	ID() string
	History() []contractx.Message
	Send(ctx context.Context, text string) (contractx.Message, error)
}

// ResetFunc returns a brand-new conversation to replace the current one.
type ResetFunc func() (Chat, error)

func Run(ctx context.Context, chat Chat, reset ResetFunc, notices <-chan contractx.ToolNotice) error {
	p := tea.NewProgram(
		New(ctx, chat, reset, notices),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
