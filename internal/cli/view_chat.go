package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatReplyMsg carries the advisor's reply back to the view.
type chatReplyMsg struct{ reply string }

// chatView is a multi-turn conversation with the advisor. Each question is
// sent with a fresh snapshot of ponds and logs.
type chatView struct {
	ctx   context.Context
	store *service.Store
	conv  *advisor.Conversation

	input   textinput.Model
	spinner spinner.Model
	pending string

	submit key.Binding
	quit   key.Binding
}

func newChatView(ctx context.Context, store *service.Store, conv *advisor.Conversation) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.Placeholder = "Ask about pH, temperature, harvesting..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleTeal

	return &chatView{
		ctx:     ctx,
		store:   store,
		conv:    conv,
		input:   ti,
		spinner: sp,
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		v.pending = ""
		return v, nil

	case spinner.TickMsg:
		if v.pending == "" {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if key.Matches(msg, v.quit) {
			return v, tea.Quit
		}
		if key.Matches(msg, v.submit) {
			question := strings.TrimSpace(v.input.Value())
			if question == "" || v.pending != "" {
				return v, nil
			}
			switch strings.ToLower(question) {
			case "/quit", "/exit", "/q", "quit", "exit":
				return v, tea.Quit
			}
			v.input.Reset()
			v.pending = question
			return v, tea.Batch(v.spinner.Tick, v.ask(question))
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) ask(question string) tea.Cmd {
	ctx, store, conv := v.ctx, v.store, v.conv
	return func() tea.Msg {
		return chatReplyMsg{reply: conv.Send(ctx, question, store.Ponds(ctx), store.Logs(ctx))}
	}
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, t := range v.conv.Transcript() {
		b.WriteString(formatter.FormatTurn(t))
		b.WriteString("\n\n")
	}
	if v.pending != "" {
		b.WriteString(v.spinner.View() + formatter.Dim(" thinking...") + "\n\n")
	}

	b.WriteString(formatter.StyleOK.Render("ask") + formatter.Dim("> "))
	b.WriteString(v.input.View())
	b.WriteString("\n" + formatter.Dim("enter send · esc quit"))

	return b.String()
}
