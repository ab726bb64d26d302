package repository

import (
	"context"

	"instagram-gateway/domain/model"
)

// IPublishNotifier receives an event after each successful media publish.
// Notification is best-effort: failures are logged by implementations and do
// not affect the publish result.
type IPublishNotifier interface {
	Notify(ctx context.Context, event model.PublishEvent) error
}
