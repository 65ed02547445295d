package listview

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of rows per page on every management screen.
const DefaultPageSize = 5

// IDStrategy selects how Create assigns ids.
type IDStrategy int

const (
	// IDMaxPlusOne assigns max(existing ids)+1, or 1 on an empty
	// collection.  Deleting the current maximum lets its id be handed out
	// again, and two writers reading the same max would collide.
	IDMaxPlusOne IDStrategy = iota
	// IDMonotonic assigns one past the highest id the store has ever held,
	// so deleted ids are never reused.
	IDMonotonic
)

// ParseIDStrategy maps a config value to a strategy; anything other than
// "monotonic" yields IDMaxPlusOne.
func ParseIDStrategy(s string) IDStrategy {
	if s == "monotonic" {
		return IDMonotonic
	}
	return IDMaxPlusOne
}

type options struct {
	pageSize   int
	locale     language.Tag
	idStrategy IDStrategy
	logger     zerolog.Logger
}

// Option configures a Store or an Engine.
type Option func(*options)

// WithPageSize sets the page size; values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithLocale sets the collation locale used to sort text fields.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithIDStrategy sets the id assignment rule for Create.
func WithIDStrategy(s IDStrategy) Option {
	return func(o *options) { o.idStrategy = s }
}

// WithLogger sets the logger used to trace no-op mutations and load problems.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(entity string, opts []Option) options {
	o := options{
		pageSize: DefaultPageSize,
		locale:   language.English,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With().Str("entity", entity).Logger()
	return o
}
