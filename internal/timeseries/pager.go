package timeseries

// PageSize is both the initial window and the load-more increment.
const PageSize = 5

// Pager is the visible-count cursor of the harvest ledger.
type Pager struct {
	visible int
}

func NewPager() *Pager {
	return &Pager{visible: PageSize}
}

// Visible returns how many rows are shown, never more than total.
func (p *Pager) Visible(total int) int {
	return min(p.visible, total)
}

// LoadMore shows up to PageSize more rows, clamped to total.
func (p *Pager) LoadMore(total int) {
	p.visible = max(min(p.visible+PageSize, total), PageSize)
}

func (p *Pager) ShowLess() { p.visible = PageSize }

// Reset returns to the first page, as after recording a new harvest.
func (p *Pager) Reset() { p.visible = PageSize }

func (p *Pager) HasMore(total int) bool { return p.visible < total }

func (p *Pager) CanShowLess() bool { return p.visible > PageSize }

// Remaining returns how many rows are hidden.
func (p *Pager) Remaining(total int) int {
	return max(total-p.visible, 0)
}

// Page returns the visible head of items.
func Page[T any](p *Pager, items []T) []T {
	return items[:p.Visible(len(items))]
}

// PagerAt restores a cursor showing n rows. Values below PageSize start at
// the first page.
func PagerAt(n int) *Pager {
	return &Pager{visible: max(n, PageSize)}
}
