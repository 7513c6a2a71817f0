package ports

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultSort  = "-createdAt"

	// MaxPage keeps (page-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// SortField is one key of a multi-key ordering.
type SortField struct {
	Field string
	Desc  bool
}

// ListOptions carries the resolved pagination, projection and ordering of a
// list request. A zero Limit means no limit.
type ListOptions struct {
	Page   int
	Limit  int
	Skip   int
	Fields []string
	Sort   []SortField
}

// DefaultListOptions returns the options used when a request supplies none.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Skip:  0,
		Sort:  []SortField{{Field: "createdAt", Desc: true}},
	}
}

// ListResult is one page of owner-scoped records.
type ListResult[T any] struct {
	Items []*T
	// Projected holds the page as stored documents when the request selected
	// fields. Items is empty in that case.
	Projected []map[string]any
	Total     int64
	Page      int
	Limit     int
	Pages     int
}

// Projects reports whether o selects a subset of fields.
func (o ListOptions) Projects() bool {
	return len(o.Fields) > 0
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
