package db

import "fmt"

// Page is a skip/limit window over a query. MaxLimit, when set, caps the
// effective limit; a zero Limit falls back to MaxLimit. The window is
// pushed down to the query as LIMIT/OFFSET, never applied by truncating
// a fetched superset.
type Page struct {
	Skip     int
	Limit    int
	MaxLimit int
}

// Effective returns the limit and offset actually sent to the store. A
// zero limit with no cap means no LIMIT clause.
func (p Page) Effective() (limit, offset int) {
	offset = p.Skip
	if offset < 0 {
		offset = 0
	}
	limit = p.Limit
	if limit < 0 {
		limit = 0
	}
	if p.MaxLimit > 0 && (limit == 0 || limit > p.MaxLimit) {
		limit = p.MaxLimit
	}
	return limit, offset
}

// sql renders the window as a query suffix.
func (p Page) sql() string {
	limit, offset := p.Effective()
	if limit == 0 {
		return fmt.Sprintf(" OFFSET %d", offset)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}
