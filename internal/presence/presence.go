// Package presence tracks which users currently hold a live real-time
// session. Each user has at most one session; a newer connection replaces
// the older one.
package presence

import "context"

type Tracker interface {
	Connect(ctx context.Context, userID, sessionID string) error
	// Disconnect removes userID only while sessionID is still its current
	// session, and reports whether it did.
	Disconnect(ctx context.Context, userID, sessionID string) (bool, error)
	Session(ctx context.Context, userID string) (string, bool, error)
	Online(ctx context.Context) ([]string, error)
}
