package outbound

import "context"

// SessionLogPort records pipeline events per book. Calls are
// fire-and-forget: callers log failures locally and never let them
// reach pipeline control flow.
type SessionLogPort interface {
	Persist(ctx context.Context, bookName string, logType string, data interface{}) error
}
