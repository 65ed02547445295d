package handler // handler defines http handlers

import (
	"context"  // context carries the request deadline into fixture loads
	"errors"   // errors matches listview sentinels
	"net/http" // http defines status code constants
	"strconv"  // strconv parses ids and page numbers
	"strings"  // strings trims request values
	"sync"     // sync serializes access to the engine

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/room-booking-admin/internal/fixture"
	"github.com/iliyamo/room-booking-admin/internal/listview"
)

// EntityHandler exposes one entity's list view over HTTP.  The engine models
// a single UI session and is not goroutine-safe, so every handler takes mu.
type EntityHandler[T any] struct {
	mu      sync.Mutex
	engine  *listview.Engine[T]
	loader  *fixture.Loader
	fixture string
}

// NewEntityHandler wraps engine.  loader and fixtureName back the reload
// endpoint; a nil loader disables it.
func NewEntityHandler[T any](engine *listview.Engine[T], loader *fixture.Loader, fixtureName string) *EntityHandler[T] {
	if engine == nil { // an engine is mandatory
		panic("nil engine passed to NewEntityHandler")
	}
	return &EntityHandler[T]{engine: engine, loader: loader, fixture: fixtureName}
}

// Entity returns the collection name used in routes.
func (h *EntityHandler[T]) Entity() string { return h.engine.Schema().Entity }

// Count returns the number of records held.
func (h *EntityHandler[T]) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Len()
}

// Snapshot returns a copy of every record held.
func (h *EntityHandler[T]) Snapshot() []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Snapshot()
}

// Subscribe registers fn for collection changes.
func (h *EntityHandler[T]) Subscribe(fn listview.Subscriber) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Subscribe(fn)
}

// Revision returns the collection's mutation counter.  The response cache
// keys list pages by it.
func (h *EntityHandler[T]) Revision() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Revision()
}

// Load reads the entity's fixture.  A failure leaves the collection empty.
func (h *EntityHandler[T]) Load(ctx context.Context) (int, error) {
	if h.loader == nil {
		return 0, errors.New("no fixture loader configured")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fixture.LoadInto[T](ctx, h.loader, h.fixture, h.engine)
}

// withEngine runs fn while holding the engine lock.
func (h *EntityHandler[T]) withEngine(fn func(e *listview.Engine[T]) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.engine)
}

// render writes the session view with status.
func (h *EntityHandler[T]) render(c echo.Context, status int) error {
	return c.JSON(status, h.engine.View())
}

// List handles GET /v1/{entity}.  It computes a page from query parameters
// without touching the session state, so responses are cacheable.
func (h *EntityHandler[T]) List(c echo.Context) error {
	v := listview.NewViewState()
	v.Search = c.QueryParam("search")
	if f := strings.TrimSpace(c.QueryParam("sort")); f != "" {
		v.Sort = listview.Sort{Field: f, Direction: listview.ParseDirection(c.QueryParam("order"))}
	}
	if p := strings.TrimSpace(c.QueryParam("page")); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil { // page must be numeric
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid page"})
		}
		v.Page = n
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		page, err := e.Query(v)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, page)
	})
}

// View handles GET /v1/{entity}/view.
func (h *EntityHandler[T]) View(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		return h.render(c, http.StatusOK)
	})
}

// Search handles PUT /v1/{entity}/view/search.
func (h *EntityHandler[T]) Search(c echo.Context) error {
	var body struct {
		Query string `json:"query"` // free text; empty clears the filter
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		e.Search(body.Query)
		return h.render(c, http.StatusOK)
	})
}

// Sort handles POST /v1/{entity}/view/sort.  Sorting the current field again
// flips the direction.
func (h *EntityHandler[T]) Sort(c echo.Context) error {
	var body struct {
		Field string `json:"field"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Field) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "field is required"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		if err := e.Sort(body.Field); err != nil {
			return writeError(c, err)
		}
		return h.render(c, http.StatusOK)
	})
}

// Page handles PUT /v1/{entity}/view/page.
func (h *EntityHandler[T]) Page(c echo.Context) error {
	var body struct {
		Page *int `json:"page"`
	}
	if err := c.Bind(&body); err != nil || body.Page == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "page is required"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		e.GotoPage(*body.Page)
		return h.render(c, http.StatusOK)
	})
}

// ResetView handles DELETE /v1/{entity}/view.
func (h *EntityHandler[T]) ResetView(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		e.ResetView()
		return h.render(c, http.StatusOK)
	})
}

// OpenModal handles POST /v1/{entity}/modal.
func (h *EntityHandler[T]) OpenModal(c echo.Context) error {
	var body struct {
		Mode string `json:"mode"` // "create" or "edit"
		ID   int    `json:"id"`   // record to edit; ignored on create
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		var err error
		switch listview.Mode(strings.ToLower(body.Mode)) {
		case listview.ModeCreate:
			err = e.OpenCreate()
		case listview.ModeEdit:
			err = e.OpenEdit(body.ID)
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "mode must be create or edit"})
		}
		if err != nil {
			return writeError(c, err)
		}
		return h.render(c, http.StatusOK)
	})
}

// SetField handles PATCH /v1/{entity}/modal.  Values arrive as form strings.
func (h *EntityHandler[T]) SetField(c echo.Context) error {
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.Bind(&body); err != nil || body.Field == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "field is required"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		if err := e.SetField(body.Field, body.Value); err != nil {
			return writeError(c, err)
		}
		return h.render(c, http.StatusOK)
	})
}

// Submit handles POST /v1/{entity}/modal/submit.
func (h *EntityHandler[T]) Submit(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		mode := e.ModalMode()
		rec, err := e.Submit()
		if err != nil {
			return writeError(c, err)
		}
		status := http.StatusOK
		if mode == listview.ModeCreate {
			status = http.StatusCreated
		}
		return c.JSON(status, map[string]any{"record": rec, "view": e.View()})
	})
}

// CancelModal handles DELETE /v1/{entity}/modal.
func (h *EntityHandler[T]) CancelModal(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		e.Cancel()
		return h.render(c, http.StatusOK)
	})
}

// RequestDelete handles POST /v1/{entity}/:id/delete.  Nothing is removed
// until the request is confirmed.
func (h *EntityHandler[T]) RequestDelete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	return h.withEngine(func(e *listview.Engine[T]) error {
		if err := e.RequestDelete(id); err != nil {
			return writeError(c, err)
		}
		return h.render(c, http.StatusAccepted)
	})
}

// ConfirmDelete handles POST /v1/{entity}/delete/confirm.
func (h *EntityHandler[T]) ConfirmDelete(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		removed, err := e.ConfirmDelete()
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"deleted": removed, "view": e.View()})
	})
}

// CancelDelete handles POST /v1/{entity}/delete/cancel.
func (h *EntityHandler[T]) CancelDelete(c echo.Context) error {
	return h.withEngine(func(e *listview.Engine[T]) error {
		e.CancelDelete()
		return h.render(c, http.StatusOK)
	})
}

// Reload handles POST /v1/{entity}/reload.  A failed load still answers 200
// with an empty list, mirroring startup, and reports the cause.
func (h *EntityHandler[T]) Reload(c echo.Context) error {
	n, err := h.Load(c.Request().Context())
	resp := map[string]any{"entity": h.Entity(), "records": n}
	if err != nil {
		resp["warning"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// writeError maps engine errors to HTTP responses.
func writeError(c echo.Context, err error) error {
	var verr *listview.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, listview.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, listview.ErrUnknownField), errors.Is(err, listview.ErrReadOnlyField):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, listview.ErrModalOpen), errors.Is(err, listview.ErrModalClosed), errors.Is(err, listview.ErrNoPendingDelete):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
