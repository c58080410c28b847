package cmsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-editor/internal/logging"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/interfaces"
	"github.com/goliatone/go-slug"
	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrManagerRequired = errors.New("cmsclient: route manager is required")
	ErrSlugRequired    = errors.New("cmsclient: page slug is required")
)

// NotFoundError is returned when the CMS has no published page for the slug
// and locale.
type NotFoundError struct {
	Slug   string
	Locale string
}

func (e *NotFoundError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("cms page %q not found", e.Slug)
	}
	return fmt.Sprintf("cms page %q (%s) not found", e.Slug, e.Locale)
}

// Page is the published page payload served by the CMS.
type Page struct {
	Slug        string                `json:"slug"`
	Locale      string                `json:"locale,omitempty"`
	Title       string                `json:"title,omitempty"`
	Content     map[string]nodes.Node `json:"content"`
	Version     string                `json:"version,omitempty"`
	PublishedAt time.Time             `json:"published_at,omitempty"`
}

// Options configures the read-only CMS client.
type Options struct {
	// Manager builds page URLs; required.
	Manager *urlkit.RouteManager
	// Group is the route group holding the page route. Defaults to "cms".
	Group string
	// Route is the page route name. Defaults to "page".
	Route string
	// SlugParam is the route parameter receiving the slug. Defaults to "slug".
	SlugParam string
	// LocaleQuery is the query parameter carrying the locale; empty disables
	// locale propagation.
	LocaleQuery string
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
	// Logger receives request diagnostics.
	Logger interfaces.Logger
}

// Client fetches published pages from a CMS over HTTP. It never writes: the
// editor owns drafts locally and only reads the published rendition.
type Client struct {
	manager     *urlkit.RouteManager
	group       string
	route       string
	slugParam   string
	localeQuery string
	httpClient  *http.Client
	logger      interfaces.Logger
}

func New(opts Options) (*Client, error) {
	if opts.Manager == nil {
		return nil, ErrManagerRequired
	}
	client := &Client{
		manager:     opts.Manager,
		group:       opts.Group,
		route:       opts.Route,
		slugParam:   opts.SlugParam,
		localeQuery: opts.LocaleQuery,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
	}
	if client.group == "" {
		client.group = "cms"
	}
	if client.route == "" {
		client.route = "page"
	}
	if client.slugParam == "" {
		client.slugParam = "slug"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.logger == nil {
		client.logger = logging.NoOp()
	}
	return client, nil
}

// Page fetches the published page for slugValue. The slug is normalized
// before the request so callers can pass display titles verbatim.
func (c *Client) Page(ctx context.Context, slugValue, locale string) (*Page, error) {
	normalized, err := slug.Normalize(slugValue)
	if err != nil || normalized == "" {
		return nil, ErrSlugRequired
	}

	url, err := c.pageURL(normalized, locale)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cmsclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cmsclient: fetch page %q: %w", normalized, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Slug: normalized, Locale: locale}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cmsclient: fetch page %q: unexpected status %d", normalized, resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("cmsclient: decode page %q: %w", normalized, err)
	}
	if page.Slug == "" {
		page.Slug = normalized
	}

	c.logger.Debug("fetched cms page", "slug", normalized, "locale", locale, "nodes", len(page.Content))
	return &page, nil
}

func (c *Client) pageURL(normalized, locale string) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("cmsclient: route %s.%s not configured: %v", c.group, c.route, rec)
		}
	}()

	builder := c.manager.Group(c.group).Builder(c.route).WithParam(c.slugParam, normalized)
	if c.localeQuery != "" && locale != "" {
		builder = builder.WithQuery(c.localeQuery, locale)
	}
	return builder.Build()
}
