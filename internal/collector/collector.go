// Package collector talks to the remote endpoint that receives
// finished operations. One POST per submission; there is deliberately
// no retry here — a failed submit leaves the draft in place and the
// user retries by hand.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("collector url not configured")

// SubmitError is a non-2xx answer from the collector. Recoverable: the
// caller keeps the draft and surfaces the status to the user.
type SubmitError struct {
	Status int
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("collector rejected submission with status %d", e.Status)
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Submit sends payload as a single JSON POST. Any 2xx status is
// success; anything else comes back as a *SubmitError.
func (c *Client) Submit(ctx context.Context, payload any) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmitError{Status: resp.StatusCode}
	}
	return nil
}
