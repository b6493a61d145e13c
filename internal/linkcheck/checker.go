package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/navindex"
)

// Finding describes one problematic link target.
type Finding struct {
	Label  string `json:"label,omitempty"`
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"` // HTTP status, 0 for non-HTTP failures
	Error  string `json:"error"`
}

// Checker verifies external link targets and rendered output links.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

// NewChecker creates a checker. client may be nil; a default with sane
// timeouts is used then.
func NewChecker(client *http.Client) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Checker{client: client, timeout: 10 * time.Second}
}

// CheckTargets validates the link targets of an index. Syntax is always
// checked; when live is true each URL is also HEAD-requested.
func (c *Checker) CheckTargets(ctx context.Context, ix *navindex.Index, live bool) []Finding {
	var findings []Finding
	for _, link := range ix.Links() {
		u, err := url.Parse(link.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			findings = append(findings, Finding{Label: link.Label, URL: link.URL, Error: "not an absolute URL"})
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			findings = append(findings, Finding{Label: link.Label, URL: link.URL, Error: fmt.Sprintf("unsupported scheme %q", u.Scheme)})
			continue
		}
		if !live {
			continue
		}
		if f := c.headCheck(ctx, link.Label, link.URL); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

func (c *Checker) headCheck(ctx context.Context, label, target string) *Finding {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, target, nil)
	if err != nil {
		return &Finding{Label: label, URL: target, Error: err.Error()}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &Finding{Label: label, URL: target, Error: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return &Finding{Label: label, URL: target, Status: resp.StatusCode, Error: http.StatusText(resp.StatusCode)}
	}
	slog.Debug("Link target reachable", logfields.Label(label), logfields.URL(target))
	return nil
}

// CheckRendered walks a rendered site directory and reports internal anchors
// pointing at files that do not exist in the output.
func CheckRendered(siteDir string) ([]Finding, error) {
	navPage := filepath.Join(siteDir, "index.html")
	links, err := ExtractLinks(navPage)
	if err != nil {
		return nil, fmt.Errorf("extract links from %s: %w", navPage, err)
	}

	var findings []Finding
	for _, link := range links {
		if link.External {
			continue
		}
		target := filepath.Join(siteDir, filepath.FromSlash(link.URL))
		if _, err := os.Stat(target); err != nil {
			findings = append(findings, Finding{URL: link.URL, Error: "rendered target missing"})
		}
	}
	return findings, nil
}
