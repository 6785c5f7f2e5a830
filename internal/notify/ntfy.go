// Package notify pushes new-report alerts to an ntfy topic. Alerts are
// fire-and-forget: failures are logged by callers and never retried.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

const snippetLimit = 150

type Notifier struct {
	baseURL string
	topic   string
	client  *http.Client
}

func New(baseURL, topic string, timeout time.Duration) *Notifier {
	return &Notifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		topic:   topic,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewReport publishes an alert for a freshly stored report. Priority,
// tags, and the title marker follow the severity bucket so subscribers
// can filter HIGH traffic.
func (n *Notifier) NewReport(ctx context.Context, reportID string, origin models.Origin, abuseType string, bucket models.SeverityBucket, snippet string) error {
	var priority, tags, marker string
	switch bucket {
	case models.SeverityHigh:
		priority, tags, marker = "high", "warning,rotating_light", "!"
	case models.SeverityMedium:
		priority, tags, marker = "default", "speech_balloon", "-"
	default:
		priority, tags, marker = "low", "memo", "."
	}

	title := fmt.Sprintf("%s %s - %s", marker, bucket, abuseType)
	message := fmt.Sprintf("Origin: %s\n\n%s\n\nID: %.8s...", origin, truncate(snippet, snippetLimit), reportID)

	endpoint := fmt.Sprintf("%s/%s?title=%s", n.baseURL, n.topic, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return err
	}
	req.Header.Set("Priority", priority)
	req.Header.Set("Tags", tags)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
