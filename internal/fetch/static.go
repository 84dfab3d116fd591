package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches pages over plain HTTP. The circuits pipeline uses it for
// sources that serve their table in the initial response, where running a
// browser would only add startup cost.
type Client struct {
	rest *resty.Client
}

// NewClient creates a Client with the given request timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	rest := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Client{rest: rest}
}

// FetchPage retrieves the page at url and returns its HTML.
//
// Any transport error or non-success status is returned to the caller, who
// treats it as fatal for the run. There is no retry: the sources are stable
// reference pages, and a failure usually means the run should stop rather
// than hammer the site.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s returned %s", ErrBadStatus, url, resp.Status())
	}

	return resp.String(), nil
}
