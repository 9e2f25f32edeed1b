package icons

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"cheatsheets/internal/contextutil"
	apperrors "cheatsheets/internal/errors"
)

const (
	// DefaultIconURL is returned for ids without an icon of their own.
	DefaultIconURL = "https://raw.githubusercontent.com/Fechin/reference/main/source/assets/icon/todoist.svg"

	iconExt     = ".svg"
	populateKey = "icons"
)

// Lister fetches the raw icon directory listing.
type Lister interface {
	// ListIcons returns the JSON directory listing body.
	ListIcons(ctx context.Context) ([]byte, error)
}

// Cache maps cheatsheet ids to icon URLs. It is populated once, lazily, from
// the directory listing and then reused for the life of the Cache.
type Cache struct {
	lister       Lister
	defaultURL   string
	retryOnError bool

	group singleflight.Group

	mu     sync.RWMutex
	done   bool
	icons  map[string]string
	popErr error
}

// Option configures a Cache.
type Option func(*Cache)

// WithDefaultURL sets the URL returned on a cache miss.
func WithDefaultURL(url string) Option {
	return func(c *Cache) {
		if url != "" {
			c.defaultURL = url
		}
	}
}

// WithRetryOnError controls what happens after a failed population. When
// true (the default) the failure is handed to the callers that shared it and
// the next lookup tries again. When false the first failure is kept and every
// later lookup resolves to the default URL without another request.
func WithRetryOnError(retry bool) Option {
	return func(c *Cache) {
		c.retryOnError = retry
	}
}

// NewCache creates an empty Cache backed by lister.
func NewCache(lister Lister, opts ...Option) *Cache {
	c := &Cache{
		lister:       lister,
		defaultURL:   DefaultIconURL,
		retryOnError: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultURL returns the fallback icon URL.
func (c *Cache) DefaultURL() string {
	return c.defaultURL
}

// Populate returns the id → URL map, fetching the listing on first use.
// Concurrent first callers share a single request and all observe the same
// map or the same error. The returned map is shared and must not be modified.
//
// The shared request is detached from the caller's cancellation: a caller
// whose ctx ends stops waiting and gets ctx.Err(), while the request carries
// on for the others and its outcome is cached as usual.
func (c *Cache) Populate(ctx context.Context) (map[string]string, error) {
	if icons, ok, err := c.cached(); ok {
		return icons, err
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(populateKey, func() (any, error) {
		// A caller may have finished populating between our check and Do.
		if icons, ok, err := c.cached(); ok {
			return icons, err
		}

		icons, err := c.load(loadCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		switch {
		case err == nil:
			c.icons, c.done = icons, true
		case !c.retryOnError:
			c.popErr, c.done = err, true
		}
		return icons, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]string), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve returns the icon URL for id. It never fails: a miss or a failed
// population yields the default URL.
func (c *Cache) Resolve(ctx context.Context, id string) string {
	icons, err := c.Populate(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "icon directory unavailable, using default icon",
			"id", id, "error", err)
		return c.defaultURL
	}
	if url, ok := icons[id]; ok {
		return url
	}
	return c.defaultURL
}

func (c *Cache) cached() (icons map[string]string, ok bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.icons, c.done, c.popErr
}

func (c *Cache) load(ctx context.Context) (map[string]string, error) {
	raw, err := c.lister.ListIcons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list icons: %w", err)
	}
	icons, err := ParseListing(raw)
	if err != nil {
		return nil, err
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "icon directory loaded", "icons", len(icons))
	return icons, nil
}

// ParseListing converts a directory listing (a JSON array of
// {name, type, download_url}) into an id → URL map. Only "file" entries with
// a download URL are kept, and the ".svg" extension is stripped from names.
func ParseListing(raw []byte) (map[string]string, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: listing is not valid JSON", apperrors.ErrDirectory)
	}
	listing := gjson.ParseBytes(raw)
	if !listing.IsArray() {
		return nil, fmt.Errorf("%w: listing is not an array", apperrors.ErrDirectory)
	}

	icons := make(map[string]string)
	var shapeErr error
	index := 0
	listing.ForEach(func(_, entry gjson.Result) bool {
		defer func() { index++ }()

		if !entry.IsObject() {
			shapeErr = fmt.Errorf("%w: entry %d is not an object", apperrors.ErrDirectory, index)
			return false
		}
		name, kind := entry.Get("name"), entry.Get("type")
		if name.Type != gjson.String || kind.Type != gjson.String {
			shapeErr = fmt.Errorf("%w: entry %d lacks a string name or type", apperrors.ErrDirectory, index)
			return false
		}
		if kind.Str != "file" {
			return true
		}
		downloadURL := entry.Get("download_url")
		if downloadURL.Type != gjson.String {
			return true
		}
		icons[strings.TrimSuffix(name.Str, iconExt)] = downloadURL.Str
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	return icons, nil
}
