package listview

import "strings"

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc", in any case, to Desc and anything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort is the sort control.  An empty Field means insertion order.
type Sort struct {
	Field     string    `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// ViewState is the read-side descriptor: what to search, how to order and
// which page to show.  It never touches the collection.
type ViewState struct {
	Search string `json:"search"`
	Sort   Sort   `json:"sort"`
	Page   int    `json:"page"`
}

// NewViewState returns the state of a freshly loaded screen.
func NewViewState() ViewState {
	return ViewState{Page: 1}
}

// SetSearch changes the search text.  A different text sends the view back
// to page 1, since the old page may not exist after filtering.
func (v *ViewState) SetSearch(q string) {
	if q == v.Search {
		return
	}
	v.Search = q
	v.Page = 1
}

// ToggleSort applies a click on a column header: a new column sorts
// ascending, the current column flips direction.  There is no click that
// returns to unsorted.
func (v *ViewState) ToggleSort(field string) {
	if v.Sort.Field == field {
		if v.Sort.Direction == Asc {
			v.Sort.Direction = Desc
		} else {
			v.Sort.Direction = Asc
		}
		return
	}
	v.Sort = Sort{Field: field, Direction: Asc}
}

// SetPage moves to page p.  Range checking is left to the pipeline, which
// answers out-of-range pages with no rows.
func (v *ViewState) SetPage(p int) {
	v.Page = p
}

// Reset clears search, sort and page.
func (v *ViewState) Reset() {
	*v = NewViewState()
}
