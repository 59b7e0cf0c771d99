// Package source opens the byte streams response documents are read from.
//
// A location is either a local file path or an http(s) URL. This is a CLI
// helper; library users can hand any io.Reader to document.Reader.
package source

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Vitexus/pohoda/errdefs"
)

// Client opens local files and fetches remote documents.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client; a zero timeout means no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open returns the document at location. The caller closes it.
func (c *Client) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, errdefs.New("source.open", errdefs.KindIOOpen, "", errors.New("empty location"))
	}
	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, errdefs.New("source.open", errdefs.KindIOOpen, location, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errdefs.New("source.open", errdefs.KindIOOpen, location, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errdefs.New("source.open", errdefs.KindIOOpen, location,
			errors.Wrapf(err, "failed to fetch %s", location))
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errdefs.New("source.open", errdefs.KindIOOpen, location,
			errors.Errorf("HTTP %d from %s", resp.StatusCode, location))
	}
	return resp.Body, nil
}
