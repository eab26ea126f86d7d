package repository

import (
	"context"
	"time"
)

// IStateStore holds the pending OAuth state nonce per browser session
type IStateStore interface {
	Save(ctx context.Context, sessionID, state string, ttl time.Duration) error
	// Take returns and forgets the state stored for sessionID; "" when none
	Take(ctx context.Context, sessionID string) (string, error)
}
