package notify

import (
	"context"
	"encoding/json"

	"github.com/tristanguckenberger/srcdoc-server/internal/live"
	"github.com/tristanguckenberger/srcdoc-server/internal/logger"
)

// Dispatcher persists a notification and attempts best-effort live
// delivery. Durability is the contract; delivery is opportunistic and
// never retried.
type Dispatcher struct {
	store    Store
	registry *live.Registry
}

func NewDispatcher(store Store, registry *live.Registry) *Dispatcher {
	return &Dispatcher{
		store:    store,
		registry: registry,
	}
}

// Notify writes the notification, then pushes the persisted record to
// the recipient's live connection when one is registered. A
// persistence failure fails the call; an absent or failing connection
// does not.
func (d *Dispatcher) Notify(ctx context.Context, in Input) (*Notification, error) {
	n, err := d.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	handle, ok := d.registry.Lookup(n.Recipient)
	if !ok {
		logger.Info("recipient not connected", map[string]any{
			"recipient_id": n.Recipient,
			"type":         n.Type,
		})
		return n, nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		logger.Error("notification marshal failed", map[string]any{
			"notification_id": n.ID,
			"error":           err.Error(),
		})
		return n, nil
	}

	if err := handle.Push(payload); err != nil {
		logger.Warn("live delivery failed", map[string]any{
			"notification_id": n.ID,
			"recipient_id":    n.Recipient,
			"error":           err.Error(),
		})
	}

	return n, nil
}
