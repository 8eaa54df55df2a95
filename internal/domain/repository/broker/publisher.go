package broker

import "context"

// Event notifies downstream consumers about a committed collection change.
type Event struct {
	Name     string
	ParentID string
	MediaID  string
}

const (
	EventMediaIngested = "media_ingested"
	EventMediaRemoved  = "media_removed"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
