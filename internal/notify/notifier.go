package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/taskhub/taskhub/internal/config"
)

const deliverTimeout = 10 * time.Second

// Notifier fans task mutation events out to webhook targets.
//
// Notifier is safe for concurrent use.
type Notifier struct {
	mu       sync.RWMutex
	webhooks []config.WebhookConfig

	client *http.Client
}

// New creates a Notifier from the notify configuration. A Notifier with no
// webhooks is valid — Publish becomes a no-op.
func New(cfg config.NotifyConfig) *Notifier {
	return &Notifier{
		webhooks: cfg.Webhooks,
		client:   &http.Client{Timeout: deliverTimeout},
	}
}

// SetWebhooks replaces the delivery targets. In-flight deliveries keep the
// targets they started with.
func (n *Notifier) SetWebhooks(webhooks []config.WebhookConfig) {
	n.mu.Lock()
	n.webhooks = webhooks
	n.mu.Unlock()
}

// Publish delivers one event to all configured targets asynchronously.
// Errors are logged by the delivery goroutine and never surfaced to the
// caller.
func (n *Notifier) Publish(event string, data any) {
	n.mu.RLock()
	targets := make([]config.WebhookConfig, len(n.webhooks))
	copy(targets, n.webhooks)
	n.mu.RUnlock()

	if len(targets) == 0 {
		return
	}
	go n.deliver(targets, event, data)
}
