// Package slack posts review notifications to a Slack incoming webhook.
// Delivery is best-effort; a failed post never fails the review run.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
)

const postTimeout = 10 * time.Second

// Notifier posts messages to a webhook URL. A Notifier with an empty URL
// silently skips every post.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// NewNotifier creates a Notifier. url may be empty to disable notifications.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		webhookURL: url,
		client:     &http.Client{Timeout: postTimeout},
	}
}

// Notify posts a text message and reports whether delivery succeeded.
// Failures are logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, message string) bool {
	if n.webhookURL == "" {
		return false
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		clog.WarnContextf(ctx, "slack payload marshal failed: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		clog.WarnContextf(ctx, "slack request failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		clog.WarnContextf(ctx, "slack alert failed (continuing): %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		clog.WarnContextf(ctx, "slack alert failed (continuing): %v", fmt.Errorf("status %d", resp.StatusCode))
		return false
	}
	return true
}
