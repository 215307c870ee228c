package notify

import (
	"context"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/sse"
)

// Notifier pushes task-change events to whoever is watching a
// solution's timeline.
type Notifier interface {
	NotifyTaskChanged(ctx context.Context, e TaskChangedEvent) error
}

// NoopNotifier is used when the event stream is disabled.
type NoopNotifier struct{}

func (NoopNotifier) NotifyTaskChanged(context.Context, TaskChangedEvent) error { return nil }

// HubNotifier bridges mutations into the SSE hub.
type HubNotifier struct {
	hub *sse.Hub
}

func NewHubNotifier(hub *sse.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyTaskChanged(_ context.Context, e TaskChangedEvent) error {
	n.hub.Broadcast(e.SolutionID, sse.Event{
		Type: "task." + e.Action,
		Data: e,
	})
	return nil
}

var _ Notifier = (*HubNotifier)(nil)
var _ Notifier = NoopNotifier{}
