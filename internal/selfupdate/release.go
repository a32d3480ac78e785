package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// Release is a published GitHub release and its downloadable assets.
type Release struct {
	Tag    string
	URL    string
	Assets map[string]string // asset name to download URL

	version string // canonical semver of Tag
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	} `json:"assets"`
}

func (c *Checker) latestRelease(ctx context.Context) (*Release, error) {
	return c.fetchRelease(ctx, "latest")
}

func (c *Checker) releaseByTag(ctx context.Context, tag string) (*Release, error) {
	return c.fetchRelease(ctx, "tags/"+url.PathEscape(canonical(tag)))
}

// fetchRelease reads /repos/{owner}/{repo}/releases/{which}.
func (c *Checker) fetchRelease(ctx context.Context, which string) (*Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/%s",
		strings.TrimRight(c.baseURL, "/"), c.owner, c.repo, which)

	body, err := c.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}

	var resp releaseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	v := canonical(resp.TagName)
	if !semver.IsValid(v) {
		return nil, fmt.Errorf("invalid release tag %q", resp.TagName)
	}

	rel := &Release{
		Tag:     resp.TagName,
		URL:     resp.HTMLURL,
		Assets:  make(map[string]string, len(resp.Assets)),
		version: v,
	}
	for _, a := range resp.Assets {
		rel.Assets[a.Name] = a.URL
	}
	return rel, nil
}

// download fetches a named asset of rel.
func (c *Checker) download(ctx context.Context, rel *Release, name string) ([]byte, error) {
	u, ok := rel.Assets[name]
	if !ok {
		return nil, fmt.Errorf("release %s has no asset %s", rel.Tag, name)
	}
	data, err := c.get(ctx, u, "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	return data, nil
}

func (c *Checker) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
