package servicebus

import (
	"context"
	"encoding/json"
	"fmt"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// NewServiceBus connects to Azure Service Bus with the default credential
// chain. Callers treat a nil client as "feature off".
func NewServiceBus(_ context.Context, namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("service bus namespace not configured")
	}
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azservicebus.NewClient(namespace, credential, nil)
}

// PublishNotifier sends a Service Bus message for every published media item.
// A nil client disables the notifier without affecting publishes.
type PublishNotifier struct {
	AzservicebusClient *azservicebus.Client
	Queue              string
}

func NewPublishNotifier(azServiceBusClient *azservicebus.Client, queue string) repository.IPublishNotifier {
	return &PublishNotifier{AzservicebusClient: azServiceBusClient, Queue: queue}
}

func (n *PublishNotifier) Notify(ctx context.Context, event model.PublishEvent) error {
	if n == nil || n.AzservicebusClient == nil || n.Queue == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	sender, err := n.AzservicebusClient.NewSender(n.Queue, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		if cerr := sender.Close(ctx); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Error("Error while closing sender.")
		}
	}(sender, ctx)

	if err := sender.SendMessage(ctx, &azservicebus.Message{Body: payload}, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}
