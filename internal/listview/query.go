package listview

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Page is one rendered page of a list view plus its pagination metadata.
type Page[T any] struct {
	Rows       []T    `json:"rows"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	TotalRows  int    `json:"total_rows"`
	Search     string `json:"search"`
	Sort       Sort   `json:"sort"`
}

// Pipeline derives pages from a collection snapshot: filter, then sort,
// then paginate.  It never modifies its inputs.
type Pipeline[T any] struct {
	schema   *Schema[T]
	pageSize int
	locale   language.Tag
}

// NewPipeline returns a pipeline for schema.  WithPageSize and WithLocale
// apply.
func NewPipeline[T any](schema *Schema[T], opts ...Option) *Pipeline[T] {
	o := buildOptions(schema.Entity, opts)
	return &Pipeline[T]{schema: schema, pageSize: o.pageSize, locale: o.locale}
}

// PageSize returns the configured page size.
func (p *Pipeline[T]) PageSize() int { return p.pageSize }

// Run computes the page described by v over records.
func (p *Pipeline[T]) Run(records []T, v ViewState) Page[T] {
	rows := p.Filter(records, v.Search)
	p.sort(rows, v.Sort)
	return p.paginate(rows, v)
}

// Filter keeps the records where at least one field's string form contains
// q, ignoring case.  The result is a new slice.
func (p *Pipeline[T]) Filter(records []T, q string) []T {
	out := make([]T, 0, len(records))
	needle := strings.ToLower(q)
	for _, r := range records {
		if needle == "" || p.matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func (p *Pipeline[T]) matches(r T, needle string) bool {
	for _, f := range p.schema.Fields {
		if strings.Contains(strings.ToLower(f.Text(r)), needle) {
			return true
		}
	}
	return false
}

// sort orders rows in place.  Unknown fields leave the order untouched.
// The sort is stable in both directions.
func (p *Pipeline[T]) sort(rows []T, s Sort) {
	if s.Field == "" {
		return
	}
	f, ok := p.schema.Field(s.Field)
	if !ok {
		return
	}
	sign := 1
	if s.Direction == Desc {
		sign = -1
	}
	if f.Kind == KindNumber {
		slices.SortStableFunc(rows, func(a, b T) int {
			return sign * cmp.Compare(f.Number(a), f.Number(b))
		})
		return
	}
	col := collate.New(p.locale)
	slices.SortStableFunc(rows, func(a, b T) int {
		return sign * col.CompareString(f.Text(a), f.Text(b))
	})
}

func (p *Pipeline[T]) paginate(rows []T, v ViewState) Page[T] {
	total := len(rows)
	pages := (total + p.pageSize - 1) / p.pageSize
	if pages == 0 {
		pages = 1
	}
	out := Page[T]{
		Rows:       []T{},
		Page:       v.Page,
		PageSize:   p.pageSize,
		TotalPages: pages,
		TotalRows:  total,
		Search:     v.Search,
		Sort:       v.Sort,
	}
	if v.Page < 1 || v.Page > pages {
		return out
	}
	start := (v.Page - 1) * p.pageSize
	end := min(start+p.pageSize, total)
	out.Rows = append(out.Rows, rows[start:end]...)
	return out
}
