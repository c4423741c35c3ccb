package altrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
)

const retryMax = 3

// Client talks to the repository database export API. The base URL is
// given explicitly at construction time rather than read from the
// environment inside the client.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  rc.StandardClient(),
	}
}

// Branch downloads the binary package listing of a branch, filtered to
// the given architecture. Entries without a name, and entries for a
// different architecture that the server returned anyway, are dropped
// here so consumers only ever see well-formed records.
func (c *Client) Branch(ctx context.Context, branch, arch string) (*BranchExport, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("branch", branch, "arch", arch)
	log.V(1).Info("downloading branch listing")

	target := fmt.Sprintf("%s/%s?arch=%s", c.baseURL, url.PathEscape(branch), url.QueryEscape(arch))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching branch listing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Info("failed to download branch listing", "url", target, "code", resp.StatusCode)
		return nil, fmt.Errorf("http response failed with code: %d", resp.StatusCode)
	}
	log.V(1).Info("successfully downloaded branch listing", "code", resp.StatusCode)

	var export BranchExport
	if err := json.NewDecoder(resp.Body).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding branch listing: %w", err)
	}
	export.prune(ctx, arch)
	return &export, nil
}

func (e *BranchExport) prune(ctx context.Context, arch string) {
	log := logr.FromContextOrDiscard(ctx)

	kept := e.Packages[:0]
	for _, p := range e.Packages {
		if p.Name == "" {
			log.V(2).Info("dropping entry without a name", "version", p.Version, "release", p.Release)
			continue
		}
		if p.Arch != "" && p.Arch != arch {
			log.V(2).Info("dropping entry with unexpected arch", "name", p.Name, "arch", p.Arch)
			continue
		}
		kept = append(kept, p)
	}
	e.Packages = kept
	e.Length = int64(len(kept))
}
