package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/config"
)

// Doer executes HTTP requests; satisfied by *http.Client and mocked in tests
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the authenticated HTTP client for the content-management API
type Client struct {
	baseURL string
	token   string
	http    Doer
}

// NewClient uses the values from the config and returns a CMS client
func NewClient(conf *config.Config, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(conf.CMSBaseURL, "/"),
		token:   conf.CMSToken,
		http:    doer,
	}
}

// Get performs an authenticated GET against the CMS and decodes the envelope
// into out
func (c *Client) Get(ctx context.Context, path string, query Query, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Errorw("cms request failed",
			"path", path,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("cms returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
