package views

// Paginator tracks a cursor over a list shown one fixed-size page at a time.
// The visible page is always the one holding the cursor.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator; a non-positive size means 10
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetTotal records the list length after a reload, keeping the cursor in range
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = min(p.cursor, max(p.total-1, 0))
}

// Cursor returns the absolute index of the selected row
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves up one row, reporting whether it moved
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// CursorDown moves down one row, reporting whether it moved
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

func (p *Paginator) page() int {
	return p.cursor / p.size
}

// VisibleRange returns the [start, end) slice bounds of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.page() * p.size
	return start, min(start+p.size, p.total)
}

// TotalPages is at least 1 so an empty list still renders "page 1/1"
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.page() + 1
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	next := (p.page() + 1) * p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.page() == 0 {
		return false
	}
	p.cursor = (p.page() - 1) * p.size
	return true
}

// Reset returns to an empty list
func (p *Paginator) Reset() {
	p.cursor = 0
	p.total = 0
}
