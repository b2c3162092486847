package rubric

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/codeGROOVE-dev/retry"
)

const (
	fetchTimeout  = 10 * time.Second
	fetchAttempts = 3
	maxRubricSize = 1 << 20 // 1MB
)

// Loader fetches the rubric from a URL, optionally authenticating for
// rubrics hosted in private repositories.
type Loader struct {
	url    string
	token  string
	client *http.Client
}

// NewLoader creates a Loader. token may be empty for public rubric URLs.
func NewLoader(url, token string) *Loader {
	return &Loader{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Load returns the rubric text. Fetch failures fall back to the built-in
// rubric with a note naming the URL and error; they never fail the run.
func (l *Loader) Load(ctx context.Context) string {
	text, err := l.fetch(ctx)
	if err != nil {
		clog.WarnContextf(ctx, "rubric fetch failed, using built-in fallback: %v", err)
		return fallbackRubric(l.url, err)
	}
	return text
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	if l.url == "" {
		return "", errors.New("no rubric URL configured")
	}

	var body string
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating rubric request: %w", err))
			}
			if l.token != "" {
				req.Header.Set("Authorization", "Bearer "+l.token)
			}

			resp, err := l.client.Do(req)
			if err != nil {
				return fmt.Errorf("fetching rubric: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("rubric server returned status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("rubric server returned status %d", resp.StatusCode))
			}

			data, err := io.ReadAll(io.LimitReader(resp.Body, maxRubricSize))
			if err != nil {
				return fmt.Errorf("reading rubric body: %w", err)
			}
			body = string(data)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	return body, err
}

func fallbackRubric(url string, cause error) string {
	return fmt.Sprintf(`# Mobile PR Review Rubric (Fallback)

## Correctness
- Android lifecycle & coroutines; iOS ARC & SwiftUI state; proper async/error handling.

## Performance
- Avoid UI-thread blocking; efficient Compose/SwiftUI updates; memory/caching.

## Security
- No hardcoded secrets; secure storage (EncryptedSharedPreferences/Keychain); TLS/HTTPS; WebView safety.

## Readability / Maintainability
- Clean architecture (MVVM/MVI); DI; idiomatic Kotlin/Swift.

## Testing / Coverage
- Unit tests for ViewModels/UseCases; UI tests; offline/retry edge cases.

(Failed to load rubric from %s: %v)
`, url, cause)
}
