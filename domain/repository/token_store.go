package repository

import (
	"context"

	"instagram-gateway/domain/model"
)

// ITokenStore is the durable credential store. Implementations never surface
// I/O failures to callers: Load degrades to an empty record and Save logs and
// swallows errors, so the system acts as if no token was found rather than
// crashing.
type ITokenStore interface {
	// Load reads the current record. A missing or unreadable store yields an
	// empty record.
	Load(ctx context.Context) model.TokenRecord

	// Save overlays the update onto the existing record field by field and
	// writes the merged result back. When the update carries an access token,
	// the record's saved-at timestamp is stamped with the current time.
	Save(ctx context.Context, update model.TokenUpdate)
}
