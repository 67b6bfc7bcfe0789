package shared

// Page is one page of an ordered result set.
// Pages are numbered from 1; out-of-range numbers are clamped.
type Page[T any] struct {
	Objects     []T   `json:"objects"`
	Count       int64 `json:"count"`
	Number      int   `json:"page"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ClampPage normalises a requested page number against a total record count
// and returns the page number together with the page count.
func ClampPage(requested int, total int64, pageSize int) (page, numPages int) {
	if pageSize <= 0 {
		pageSize = 25
	}
	numPages = int(total) / pageSize
	if int(total)%pageSize > 0 {
		numPages++
	}
	if numPages == 0 {
		numPages = 1
	}

	page = requested
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return page, numPages
}

// NewPage builds a page from the objects already sliced out for it
func NewPage[T any](objects []T, total int64, page, numPages int) Page[T] {
	if objects == nil {
		objects = []T{}
	}
	return Page[T]{
		Objects:     objects,
		Count:       total,
		Number:      page,
		NumPages:    numPages,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}
}
