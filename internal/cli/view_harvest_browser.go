package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ledgerChangedMsg asks the browser to re-read the ledger. A harvest change
// returns the pager to the first page.
type ledgerChangedMsg struct {
	collection domain.Collection
	external   bool
}

// ledgerChanges turns store changes that affect the ledger into messages for
// send. Log changes are dropped.
func ledgerChanges(send func(tea.Msg)) func(service.Change) {
	return func(c service.Change) {
		if c.Collection != domain.CollectionHarvests && c.Collection != domain.CollectionPonds {
			return
		}
		send(ledgerChangedMsg{collection: c.Collection, external: c.Source == service.ChangeExternal})
	}
}

type browseKeys struct {
	More key.Binding
	Less key.Binding
	Quit key.Binding
}

func (k browseKeys) ShortHelp() []key.Binding  { return []key.Binding{k.More, k.Less, k.Quit} }
func (k browseKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		More: key.NewBinding(key.WithKeys("m", "down", " "), key.WithHelp("m", "load more")),
		Less: key.NewBinding(key.WithKeys("l", "up"), key.WithHelp("l", "show less")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// harvestBrowser pages through the ledger five entries at a time.
type harvestBrowser struct {
	ctx   context.Context
	store *service.Store
	pager *timeseries.Pager
	view  service.LedgerView
	keys  browseKeys
	help  help.Model
	// notice is shown after the ledger was changed by another process.
	notice string
}

func newHarvestBrowser(ctx context.Context, store *service.Store) *harvestBrowser {
	b := &harvestBrowser{
		ctx:   ctx,
		store: store,
		pager: timeseries.NewPager(),
		keys:  defaultBrowseKeys(),
		help:  help.New(),
	}
	b.refresh()
	return b
}

func (b *harvestBrowser) refresh() {
	b.view = b.store.HarvestLedger(b.ctx, b.pager)
}

func (b *harvestBrowser) Init() tea.Cmd { return nil }

func (b *harvestBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerChangedMsg:
		if msg.collection == domain.CollectionHarvests {
			b.pager.Reset()
		}
		b.notice = ""
		if msg.external {
			b.notice = "Updated by another process"
		}
		b.refresh()
	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.More):
			if b.view.HasMore {
				b.pager.LoadMore(b.view.Count)
				b.refresh()
			}
		case key.Matches(msg, b.keys.Less):
			if b.view.CanShowLess {
				b.pager.ShowLess()
				b.refresh()
			}
		}
	}
	return b, nil
}

func (b *harvestBrowser) View() string {
	var s strings.Builder
	s.WriteString(formatter.Header("Harvest ledger") + "\n")
	if b.notice != "" {
		s.WriteString(formatter.StyleInfo.Render(b.notice) + "\n")
	}
	if b.view.Count == 0 {
		s.WriteString(formatter.Dim("No harvests recorded yet.") + "\n\n")
		s.WriteString(b.help.View(b.keys) + "\n")
		return s.String()
	}
	s.WriteString(formatter.FormatLedgerSummary(b.view) + "\n\n")
	s.WriteString(formatter.FormatLedgerTable(b.view))
	s.WriteString("\n")
	if b.view.HasMore {
		s.WriteString(formatter.Dim(fmt.Sprintf("Showing %d of %d · %d more", len(b.view.Entries), b.view.Count, b.view.Remaining)) + "\n")
	} else {
		s.WriteString(formatter.Dim(fmt.Sprintf("Showing all %d", b.view.Count)) + "\n")
	}
	s.WriteString(b.help.View(b.keys) + "\n")
	return s.String()
}
