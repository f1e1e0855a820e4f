package views

// Paginator keeps a cursor inside a fixed-height window over a list
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a paginator showing pageSize rows at a time
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetPageSize changes the window height, e.g. after a resize
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = 1
	}
	p.pageSize = size
	p.scrollToCursor()
}

// SetTotal sets the item count and clamps the cursor
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	p.cursor = clamp(p.cursor, 0, total-1)
	p.scrollToCursor()
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.scrollToCursor()
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.totalItems-1 {
		return false
	}
	p.cursor++
	p.scrollToCursor()
	return true
}

// VisibleRange returns the half-open range of rows to draw
func (p *Paginator) VisibleRange() (start, end int) {
	return p.pageOffset, min(p.pageOffset+p.pageSize, p.totalItems)
}

// scrollToCursor moves the window the least distance that shows the cursor
func (p *Paginator) scrollToCursor() {
	switch {
	case p.cursor < p.pageOffset:
		p.pageOffset = p.cursor
	case p.cursor >= p.pageOffset+p.pageSize:
		p.pageOffset = p.cursor - p.pageSize + 1
	}
	if p.pageOffset < 0 {
		p.pageOffset = 0
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
