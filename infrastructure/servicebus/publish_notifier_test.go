package servicebus_test

import (
	"context"
	"testing"

	"instagram-gateway/domain/model"
	"instagram-gateway/infrastructure/servicebus"

	"github.com/stretchr/testify/assert"
)

func TestNewPublishNotifier(t *testing.T) {
	notifier := servicebus.NewPublishNotifier(nil, "media-published")
	assert.NotNil(t, notifier)
}

func TestNotifyNilClientIsNoop(t *testing.T) {
	notifier := servicebus.NewPublishNotifier(nil, "media-published")
	err := notifier.Notify(context.Background(), model.PublishEvent{MediaID: "media-9"})
	assert.NoError(t, err)
}

func TestNewServiceBusRequiresNamespace(t *testing.T) {
	client, err := servicebus.NewServiceBus(context.Background(), "")
	assert.Error(t, err)
	assert.Nil(t, client)
}
