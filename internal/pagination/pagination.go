package pagination

const (
	DefaultPage       = 1
	DefaultPageSize   = 10
	DefaultRecordSize = 10
)

// Request carries the page parameters of a paged query.
// Page is 1-based. PageSize drives the offset, RecordSize the number of rows fetched.
// Defaults apply only when a parameter is absent from the query string.
type Request struct {
	Page       int `form:"page,default=1" json:"page"`
	PageSize   int `form:"pageSize,default=10" json:"pageSize"`
	RecordSize int `form:"recordSize,default=10" json:"recordSize"`
}

// NewRequest returns a Request with the default values.
func NewRequest() Request {
	return Request{Page: DefaultPage, PageSize: DefaultPageSize, RecordSize: DefaultRecordSize}
}

// Normalize clamps non-positive page and pageSize to 1 and replaces a
// non-positive recordSize with the default.
func (r Request) Normalize() Request {
	r.Page = max(r.Page, 1)
	r.PageSize = max(r.PageSize, 1)
	r.RecordSize = r.Limit()
	return r
}

// Limit is the number of rows to fetch.
func (r Request) Limit() int {
	if r.RecordSize > 0 {
		return r.RecordSize
	}
	return DefaultRecordSize
}

// Offset is the number of rows to skip. Non-positive page or pageSize clamp to 1.
func (r Request) Offset() int {
	return (max(r.Page, 1) - 1) * max(r.PageSize, 1)
}

// Page is one page of results plus total-count metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	PageSize      int   `json:"pageSize"`
	RecordSize    int   `json:"recordSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// NewPage wraps content fetched for req, out of total matching rows.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	page := max(req.Page, 1)
	size := max(req.PageSize, 1)

	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		Page:          page,
		PageSize:      size,
		RecordSize:    req.Limit(),
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 1,
		Last:          page >= totalPages,
		Empty:         len(content) == 0,
	}
}

// Map converts every element of p with fn, keeping the metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		PageSize:      p.PageSize,
		RecordSize:    p.RecordSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
		Empty:         p.Empty,
	}
}
