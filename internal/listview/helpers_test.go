package listview

import "fmt"

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
	Qty  int    `json:"qty" validate:"gte=0"`
	Day  string `json:"day"`
}

func itemSchema() *Schema[item] {
	return &Schema[item]{
		Entity: "items",
		Fields: []Field[item]{
			IntField("id", func(i item) int { return i.ID }, nil),
			TextField("name", func(i item) string { return i.Name }, func(i *item, v string) { i.Name = v }),
			IntField("qty", func(i item) int { return i.Qty }, func(i *item, v int) { i.Qty = v }),
			DateField("day", func(i item) string { return i.Day }, func(i *item, v string) { i.Day = v }),
		},
		ID:     func(i item) int { return i.ID },
		WithID: func(i item, id int) item { i.ID = id; return i },
		New:    func() item { return item{} },
	}
}

// seq returns n items with ids 1..n named item-01, item-02, ...
func seq(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{ID: i + 1, Name: fmt.Sprintf("item-%02d", i+1), Qty: i}
	}
	return out
}

func ids(rows []item) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
