package pagination

const (
	DefaultPage = 0
	DefaultSize = 20
	MaxSize     = 100
)

// Params is an offset/limit page request. Page is zero-based.
type Params struct {
	Page int
	Size int
}

// Normalize clamps the request into serveable bounds.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = DefaultPage
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Page is a single page of results plus the totals the client needs to
// render pagers.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page from the fetched slice and the overall count.
func NewPage[T any](content []T, params Params, total int64) Page[T] {
	params = params.Normalize()

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(params.Size) - 1) / int64(params.Size))
	}

	if content == nil {
		content = []T{}
	}

	return Page[T]{
		Content:       content,
		PageNumber:    params.Page,
		PageSize:      params.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         params.Page == 0,
		Last:          params.Page >= totalPages-1,
	}
}
