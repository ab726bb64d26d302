package pubsub

import (
	"context"
	"encoding/json"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// NewPubSub connects to Google Cloud Pub/Sub. Callers treat a nil client as
// "feature off".
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, projectID)
}

// PublishNotifier emits a Pub/Sub message for every published media item.
// A nil client disables the notifier without affecting publishes.
type PublishNotifier struct {
	PubSubClient *pubsub.Client
	TopicName    string
}

func NewPublishNotifier(pubSubClient *pubsub.Client, topicName string) repository.IPublishNotifier {
	return &PublishNotifier{
		PubSubClient: pubSubClient,
		TopicName:    topicName,
	}
}

func (n *PublishNotifier) Notify(ctx context.Context, event model.PublishEvent) error {
	if n == nil || n.PubSubClient == nil || n.TopicName == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := n.PubSubClient.Topic(n.TopicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		logger.GetLogger().WithField("topic", n.TopicName).Info("Topic doesn't exist - creating it")
		if _, err = n.PubSubClient.CreateTopic(ctx, n.TopicName); err != nil {
			return err
		}
		topic = n.PubSubClient.Topic(n.TopicName)
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().
		WithField("serverId", serverID).
		WithField("mediaId", event.MediaID).
		Info("Publish event sent to Pub/Sub")
	return nil
}
