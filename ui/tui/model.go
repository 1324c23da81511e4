package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

const (
	title       = "AI College & Scholarship Advisor"
	headerLines = 2
	inputLines  = 3
	footerLines = 1
)

type entryKind int

const (
	entryUser entryKind = iota
	entryAdvisor
	entryNotice
	entryWarning
	entryError
)

type entry struct {
	kind entryKind
	text string
}

// replyMsg carries the turn's reply together with the tool notices raised
// while it ran, so they render ahead of the reply.
type replyMsg struct {
	msg     contractx.Message
	err     error
	notices []contractx.ToolNotice
}

type resetMsg struct {
	chat Chat
	err  error
}

// Model is the chat screen. A turn runs inside a command; input is ignored
// until its reply arrives.
type Model struct {
	ctx     context.Context
	chat    Chat
	reset   ResetFunc
	notices <-chan contractx.ToolNotice

	transcript []entry
	pending    bool

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keys     keyMap
	theme    theme

	width  int
	height int
	ready  bool
}

func New(ctx context.Context, chat Chat, reset ResetFunc, notices <-chan contractx.ToolNotice) Model {
	in := textinput.New()
	in.Placeholder = "Ask about colleges, majors or scholarships..."
	in.Prompt = "> "
	in.CharLimit = 2000
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:      ctx,
		chat:     chat,
		reset:    reset,
		notices:  notices,
		viewport: viewport.New(80, 20),
		input:    in,
		spinner:  sp,
		keys:     defaultKeyMap(),
		theme:    defaultTheme(),
	}
	m.transcript = transcriptFrom(chat.History())
	m.refresh()
	return m
}

func transcriptFrom(history []contractx.Message) []entry {
	out := make([]entry, 0, len(history))
	for _, msg := range history {
		kind := entryAdvisor
		if msg.Role == contractx.RoleUser {
			kind = entryUser
		}
		out = append(out, entry{kind: kind, text: msg.Text()})
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// drainNotices returns the notices already queued on ch without blocking.
func drainNotices(ch <-chan contractx.ToolNotice) []contractx.ToolNotice {
	var out []contractx.ToolNotice
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, n)
		default:
			return out
		}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	chat := m.chat
	ctx := m.ctx
	notices := m.notices
	return func() tea.Msg {
		msg, err := chat.Send(ctx, text)
		return replyMsg{msg: msg, err: err, notices: drainNotices(notices)}
	}
}

func (m Model) resetCmd() tea.Cmd {
	reset := m.reset
	return func() tea.Msg {
		chat, err := reset()
		return resetMsg{chat: chat, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines-inputLines-footerLines, 3)
		m.input.Width = max(msg.Width-8, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			if m.pending || m.reset == nil {
				return m, nil
			}
			m.pending = true
			return m, tea.Batch(m.resetCmd(), m.spinner.Tick)
		case key.Matches(msg, m.keys.Send):
			if m.pending {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.pending = true
			m.transcript = append(m.transcript, entry{kind: entryUser, text: text})
			m.refresh()
			return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
		}

	case replyMsg:
		m.pending = false
		for _, n := range msg.notices {
			kind := entryNotice
			if n.Level == contractx.NoticeWarning {
				kind = entryWarning
			}
			m.transcript = append(m.transcript, entry{kind: kind, text: n.String()})
		}
		if text := msg.msg.Text(); text != "" {
			m.transcript = append(m.transcript, entry{kind: entryAdvisor, text: text})
		} else if msg.err != nil {
			m.transcript = append(m.transcript, entry{kind: entryError, text: msg.err.Error()})
		}
		m.refresh()
		return m, nil

	case resetMsg:
		m.pending = false
		if msg.err != nil {
			m.transcript = append(m.transcript, entry{kind: entryError, text: "reset failed: " + msg.err.Error()})
		} else {
			m.chat = msg.chat
			m.transcript = transcriptFrom(msg.chat.History())
			m.input.Reset()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if !m.pending {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	blocks := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		var line string
		switch e.kind {
		case entryUser:
			line = m.theme.User.Render("You: ") + e.text
		case entryAdvisor:
			line = m.theme.Advisor.Render("Advisor: ") + e.text
		case entryNotice:
			line = m.theme.Info.Render(e.text)
		case entryWarning:
			line = m.theme.Warning.Render(e.text)
		case entryError:
			line = m.theme.Error.Render("Error: " + e.text)
		}
		blocks = append(blocks, wrap.Render(line))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := ""
	if m.pending {
		status = m.spinner.View() + " Thinking..."
	}

	hints := make([]string, 0, 3)
	for _, b := range m.keys.help() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	footer := m.theme.Footer.Render(strings.Join(hints, " • "))
	if status != "" {
		footer = status + "  " + footer
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(title),
		"",
		m.viewport.View(),
		m.theme.Input.Width(max(m.width-2, 10)).Render(m.input.View()),
		footer,
	)
}
