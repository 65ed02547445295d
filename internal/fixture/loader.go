// Package fixture reads the static JSON documents that seed each list view.
// A fixture lives either in a local directory or behind an HTTP base URL;
// in both cases it must be a JSON array of records.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotList is returned when a fixture parses as JSON but is not an array.
var ErrNotList = errors.New("fixture is not a JSON list")

// Loader resolves fixture names against a directory or a base URL.  When
// BaseURL is set it takes precedence over Dir.
type Loader struct {
	Dir     string
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
	Log     zerolog.Logger
}

// NewLoader returns a loader with a default HTTP client.
func NewLoader(dir, baseURL string, timeout time.Duration, log zerolog.Logger) *Loader {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Loader{
		Dir:     dir,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
		Log:     log,
	}
}

// Location returns where the named fixture is read from.
func (l *Loader) Location(name string) string {
	if l.BaseURL != "" {
		return l.BaseURL + "/" + name
	}
	return filepath.Join(l.Dir, name)
}

// Read fetches the named fixture and returns its raw bytes.
func (l *Loader) Read(ctx context.Context, name string) ([]byte, error) {
	loc := l.Location(name)
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		b, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loc, err)
		}
		return b, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", loc, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", loc, err)
	}
	return b, nil
}

// Decode parses a fixture document into records.  Anything that is not a
// JSON array, or whose elements do not fit T, is an error.
func Decode[T any](b []byte) ([]T, error) {
	trimmed := strings.TrimSpace(string(b))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, ErrNotList
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// Collection is what LoadInto fills.  Both listview.Store and
// listview.Engine satisfy it.
type Collection[T any] interface {
	ReplaceAll(records []T) int
	Entity() string
}

// LoadInto reads the named fixture into store.  Any failure leaves the
// store empty and is only logged; the returned error is for callers that
// want to report it.  It returns the number of records loaded.
func LoadInto[T any](ctx context.Context, l *Loader, name string, store Collection[T]) (int, error) {
	records, err := fetch[T](ctx, l, name)
	if err != nil {
		l.Log.Warn().Err(err).Str("fixture", name).Str("entity", store.Entity()).
			Msg("fixture load failed; starting with an empty collection")
		store.ReplaceAll(nil)
		return 0, err
	}
	n := store.ReplaceAll(records)
	l.Log.Info().Str("fixture", name).Str("entity", store.Entity()).Int("records", n).Msg("fixture loaded")
	return n, nil
}

func fetch[T any](ctx context.Context, l *Loader, name string) ([]T, error) {
	b, err := l.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decode[T](b)
}
