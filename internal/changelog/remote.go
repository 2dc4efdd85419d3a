package changelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 10 * time.Second

// MaxRemoteSize bounds the body read from a remote changelog.
const MaxRemoteSize = 16 * 1024 * 1024

// IsRemote reports whether source is an http(s) URL rather than a file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// LoadSource loads a changelog from a file path or an http(s) URL.
func LoadSource(ctx context.Context, source string, opts ...ParseOption) (*Changelog, error) {
	if IsRemote(source) {
		return FetchRemote(ctx, source, opts...)
	}
	return Load(source, opts...)
}

// FetchRemote fetches and parses a CHANGELOG.txt served at url.
// If ctx has no deadline, DefaultRemoteTimeout applies.
func FetchRemote(ctx context.Context, url string, opts ...ParseOption) (*Changelog, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRemoteTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body := &io.LimitedReader{R: resp.Body, N: MaxRemoteSize + 1}
	c, err := Parse(body, opts...)
	if body.N <= 0 {
		return nil, fmt.Errorf("fetching %s: changelog larger than %d bytes", url, MaxRemoteSize)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing changelog from %s: %w", url, err)
	}
	return c, nil
}
