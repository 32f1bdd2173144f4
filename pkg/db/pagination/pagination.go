package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a 1-based offset page request.
type Page struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps the request into [1, maxLimit] and fills defaults.
func (p Page) Normalize(defaultLimit, maxLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Result is the list envelope returned by every paginated endpoint.
type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func NewResult[T any](items []T, total int64, page Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if page.Limit > 0 {
		pages = int((total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return Result[T]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: pages,
	}
}

// Map converts the items of a result while keeping the page metadata.
func Map[T, U any](in Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, fn(item))
	}
	return Result[U]{
		Items: out,
		Total: in.Total,
		Page:  in.Page,
		Limit: in.Limit,
		Pages: in.Pages,
	}
}
