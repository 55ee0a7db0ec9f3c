package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultURL is the public npm registry.
const DefaultURL = "https://registry.npmjs.org"

// defaultTimeout bounds a single registry request. The registry answers
// packument requests in well under a second; anything slower is treated as
// a failed lookup rather than stalling the pipeline.
const defaultTimeout = 30 * time.Second

// abbreviatedAccept requests the install-time packument, which omits
// readmes and per-version metadata and is much smaller.
const abbreviatedAccept = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

// ErrNotFound is returned by Packument when the registry has no package of
// that name.
var ErrNotFound = errors.New("package not found")

// Packument is the subset of the abbreviated package document used here.
type Packument struct {
	Name     string            `json:"name"`
	DistTags map[string]string `json:"dist-tags"`
}

// Latest returns the version tagged "latest", or "" if there is none.
func (p *Packument) Latest() string {
	return p.DistTags["latest"]
}

// Client queries an npm-compatible registry over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client (tests use httptest servers).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// NewClient creates a client for the registry at baseURL. An empty baseURL
// selects DefaultURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "new-project",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists reports whether a package named name is published.
// Any answer other than 200 or 404 is an error: an unreachable registry must
// never be mistaken for an available name.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	_, err := c.Packument(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LatestVersion returns the "latest" dist-tag of the package.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	p, err := c.Packument(ctx, name)
	if err != nil {
		return "", err
	}
	latest := p.Latest()
	if latest == "" {
		return "", fmt.Errorf("package %s has no latest dist-tag", name)
	}
	return latest, nil
}

// Packument fetches the abbreviated package document for name.
func (c *Client) Packument(ctx context.Context, name string) (*Packument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PackageURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", abbreviatedAccept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var p Packument
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing package document for %s: %w", name, err)
	}
	return &p, nil
}

// PackageURL returns the packument URL of name. Scoped names keep their
// leading "@" and have the slash escaped, which is the form the registry
// expects ("@scope%2fname").
func (c *Client) PackageURL(name string) string {
	if strings.HasPrefix(name, "@") {
		if scope, pkg, ok := strings.Cut(name[1:], "/"); ok {
			return c.baseURL + "/@" + url.PathEscape(scope) + "%2f" + url.PathEscape(pkg)
		}
	}
	return c.baseURL + "/" + url.PathEscape(name)
}
