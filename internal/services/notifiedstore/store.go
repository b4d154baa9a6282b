// Package notifiedstore records which Messenger senders have already received
// the long maintenance notice.
package notifiedstore

import (
	"context"
)

// Store is the notified-sender table. A sender is present once the bot has
// replied to it and stays present until Clear.
type Store interface {
	// Has reports whether senderID has been notified.
	Has(ctx context.Context, senderID string) (bool, error)
	// MarkNotified records senderID and reports whether this call inserted it.
	// Concurrent calls for the same sender see true exactly once.
	MarkNotified(ctx context.Context, senderID string) (bool, error)
	// Clear removes every sender and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// Count returns the number of notified senders.
	Count(ctx context.Context) (int, error)
	// IDs lists the notified senders in no particular order.
	IDs(ctx context.Context) ([]string, error)
}
