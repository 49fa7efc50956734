package paging

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Request is a 1-based page window.
type Request struct {
	Page  int
	Limit int
}

func (r Request) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit
}

// Result describes the window that was served.
type Result struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func NewResult(req Request, total int) Result {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Result{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Slice returns the items of a fully materialized list that fall inside req.
func Slice[T any](items []T, req Request) []T {
	offset := req.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if req.Limit > 0 && offset+req.Limit < end {
		end = offset + req.Limit
	}
	return append([]T(nil), items[offset:end]...)
}
