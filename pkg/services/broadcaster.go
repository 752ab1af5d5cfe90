package services

import (
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/realtime"
)

// Broadcaster pushes a typed event to every connected client. Implemented by
// realtime.Hub; services treat it as fire-and-forget.
type Broadcaster interface {
	Broadcast(event realtime.Event)
}

// NopBroadcaster discards all events. Useful in tests and tools that run
// without a live-update channel.
type NopBroadcaster struct{}

// Broadcast implements Broadcaster.
func (NopBroadcaster) Broadcast(realtime.Event) {}

var _ Broadcaster = (*realtime.Hub)(nil)
var _ Broadcaster = NopBroadcaster{}
