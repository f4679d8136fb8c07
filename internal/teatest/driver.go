// Package teatest runs bubbletea models synchronously in tests: messages go
// straight to Update and returned commands are executed and fed back until
// nothing is left.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains.
const maxDepth = 100

// DefaultTimeout is how long a command may run before its message is
// dropped. Cursor blinks and spinner ticks sleep far longer than this.
const DefaultTimeout = 10 * time.Millisecond

type Driver struct {
	t        testing.TB
	model    tea.Model
	timeout  time.Duration
	quitting bool
}

type Option func(*Driver)

// WithTimeout raises the per-command timeout for models whose commands do
// real work, such as calling a service.
func WithTimeout(d time.Duration) Option {
	return func(dr *Driver) { dr.timeout = d }
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(dr *Driver) {
		dr.model, _ = dr.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(d)
	}
	d.drain(model.Init(), 0)
	return d
}

// Send delivers msg and drains the resulting commands. Nothing is delivered
// once the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quitting {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.drain(cmd, 0)
}

// Press sends one key by name: "enter", "esc", "up", "down", "ctrl+c",
// "space" or a single character.
func (d *Driver) Press(name string) {
	d.t.Helper()
	d.Send(keyMsg(name))
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) Model() tea.Model { return d.model }
func (d *Driver) View() string     { return d.model.View() }

// Quitting reports whether a command returned tea.QuitMsg.
func (d *Driver) Quitting() bool { return d.quitting }

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command depth limit (%d) reached", maxDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil || isAnimation(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.quitting = true
		d.model, _ = d.model.Update(msg)
		return
	}

	var next tea.Cmd
	d.model, next = d.model.Update(msg)
	d.drain(next, depth+1)
}

// exec runs cmd and returns nil when it outlives the timeout.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.timeout):
		return nil
	}
}

// isAnimation matches cursor blinks and spinner ticks, which reschedule
// themselves forever.
func isAnimation(msg tea.Msg) bool {
	if _, ok := msg.(spinner.TickMsg); ok {
		return true
	}
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
