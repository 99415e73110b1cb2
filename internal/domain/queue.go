package domain

import "context"

// Deferred task names.
const (
	TaskSendConfirmationEmail = "send_confirmation_email"
	TaskSetFeaturedSpeaker    = "set_featured_speaker"
)

// TaskQueue submits fire-and-forget deferred tasks. Delivery is the queue's
// responsibility; consumers must tolerate at-least-once execution.
type TaskQueue interface {
	Submit(ctx context.Context, name string, params map[string]string) error
}

// TaskHandler processes one delivered task. Returning an error leaves the
// task queued for redelivery.
type TaskHandler func(ctx context.Context, params map[string]string) error
