package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskhub/taskhub/internal/config"
)

// deliver sends one event to every target. Errors are logged but do not
// affect the caller.
func (n *Notifier) deliver(targets []config.WebhookConfig, event string, data any) {
	for _, wh := range targets {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = n.sendSlack(url, event, data)
		case "teams":
			err = n.sendTeams(url, event, data)
		case "http":
			err = n.sendHTTP(url, event, data)
		default:
			slog.Warn("notify: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("notify: webhook delivery failed",
				"type", wh.Type,
				"event", event,
				"err", err,
			)
		} else {
			slog.Debug("notify: webhook delivered",
				"type", wh.Type,
				"event", event,
			)
		}
	}
}

func (n *Notifier) sendSlack(url, event string, data any) error {
	detail, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	body, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s* %s", event, detail),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) sendTeams(url, event string, data any) error {
	detail, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	payload := map[string]interface{}{
		"@type":    "MessageCard",
		"@context": "http://schema.org/extensions",
		"summary":  event,
		"title":    fmt.Sprintf("Task event: %s", event),
		"text":     string(detail),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) sendHTTP(url, event string, data any) error {
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.post(url, body)
}

func (n *Notifier) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
