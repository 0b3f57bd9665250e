package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"HeadlineSync/internal/ports"
)

// EmbedColor is the sage green used for transfer announcements.
const EmbedColor = 5814783

// Notifier posts transfer summaries to a Discord webhook as a single embed.
type Notifier struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the webhook endpoint.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		now:        time.Now,
	}
}

// PublishTransferSummary posts the message as an embed with a timestamp.
func (n *Notifier) PublishTransferSummary(ctx context.Context, message string) error {
	if n.webhookURL == "" || n.client == nil {
		return fmt.Errorf("discord notifier misconfigured")
	}

	payload := map[string]any{
		"embeds": []map[string]any{{
			"description": message,
			"color":       EmbedColor,
			"timestamp":   n.now().UTC().Format(time.RFC3339),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal embed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("discord error: %s", resp.Status)
	}

	return nil
}
