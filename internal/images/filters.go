package images

import (
	"net/url"

	"github.com/JaimeStill/image-lab/pkg/pagination"
	"github.com/JaimeStill/image-lab/pkg/query"
)

// Filters defines optional criteria for listing images.
type Filters struct {
	// Title matches as a case-insensitive substring.
	Title *string
}

// FiltersFromQuery extracts filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if title := values.Get("title"); title != "" {
		f.Title = &title
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Title", f.Title)
}

// ListQuery is the input to System.List. Zero page or limit means unset.
type ListQuery struct {
	pagination.PageRequest
	Filters
}

// ListQueryFromQuery parses paging and filters from URL query parameters.
func ListQueryFromQuery(values url.Values) (ListQuery, error) {
	page, err := pagination.PageRequestFromQuery(values)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{PageRequest: page, Filters: FiltersFromQuery(values)}, nil
}
