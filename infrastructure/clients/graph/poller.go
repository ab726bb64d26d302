package graph

import (
	"context"
	"net/url"
	"time"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"
)

const (
	publishAttempts     = 15
	publishInitialDelay = 3 * time.Second
	publishMaxDelay     = 10 * time.Second

	pollBudgetCap       = 45 * time.Second
	defaultPollInterval = 3 * time.Second
)

// ContainerStatus reads the processing state of a media container.
func (c *Client) ContainerStatus(ctx context.Context, creationID string, opts ...repository.CallOption) (model.ContainerStatus, error) {
	params := url.Values{}
	params.Set("fields", "status_code,status")
	payload, err := c.Do(ctx, "GET", creationID, params, nil, opts...)
	if err != nil {
		return model.StatusUnknown, err
	}
	code, _ := payload["status_code"].(string)
	switch status := model.ContainerStatus(code); status {
	case model.StatusInProgress, model.StatusFinished, model.StatusError, model.StatusExpired, model.StatusPublished:
		return status, nil
	}
	return model.StatusUnknown, nil
}

// publish posts the container to media_publish and notifies listeners.
func (c *Client) publish(ctx context.Context, igUserID, creationID string, opts ...repository.CallOption) (map[string]interface{}, error) {
	body := url.Values{}
	body.Set("creation_id", creationID)
	payload, err := c.Do(ctx, "POST", igUserID+"/media_publish", nil, body, opts...)
	if err != nil {
		return nil, err
	}

	mediaID, _ := payload["id"].(string)
	c.notifyPublished(ctx, model.PublishEvent{
		MediaID:         mediaID,
		CreationID:      creationID,
		InstagramUserID: igUserID,
		PublishedAt:     c.now(),
	})
	return payload, nil
}

// alreadyPublished is the success payload for a container another caller
// raced to publish first. No second media_publish call is issued.
func alreadyPublished(creationID string) map[string]interface{} {
	logger.GetLogger().WithField("creation_id", creationID).Info("Container already published; skipping publish call")
	return map[string]interface{}{
		"creation_id": creationID,
		"note":        "container was already published",
	}
}

// WaitAndPublish polls the container with bounded attempts and backoff, then
// publishes. The poll is optimistic: when attempts run out while the
// container still reports IN_PROGRESS, the publish is attempted anyway and
// the Graph API has the final word.
func (c *Client) WaitAndPublish(ctx context.Context, igUserID, creationID string, opts ...repository.CallOption) (map[string]interface{}, error) {
	delay := publishInitialDelay
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		status, err := c.ContainerStatus(ctx, creationID, opts...)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.GetLogger().WithField("error", err).Warn("Container status check failed; continuing")
		}
		switch status {
		case model.StatusFinished:
			return c.publish(ctx, igUserID, creationID, opts...)
		case model.StatusPublished:
			return alreadyPublished(creationID), nil
		case model.StatusError:
			return nil, repository.ErrContainerFailed
		case model.StatusExpired:
			return nil, repository.ErrContainerExpired
		}

		if attempt == publishAttempts {
			break
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay = delay * 3 / 2
		if delay > publishMaxDelay {
			delay = publishMaxDelay
		}
	}

	logger.GetLogger().WithField("creation_id", creationID).Warn("Container still processing after poll attempts; publishing anyway")
	return c.publish(ctx, igUserID, creationID, opts...)
}

// PublishWithBudget polls against a wall-clock budget and publishes only on a
// FINISHED container. Budget exhaustion is reported as ErrPollBudgetExceeded,
// never as a container failure, so callers may retry with the same container.
func (c *Client) PublishWithBudget(ctx context.Context, igUserID, creationID string, budget, interval time.Duration, opts ...repository.CallOption) (map[string]interface{}, error) {
	if budget <= 0 || budget > pollBudgetCap {
		budget = pollBudgetCap
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}

	deadline := c.now().Add(budget)
	for {
		status, err := c.ContainerStatus(ctx, creationID, opts...)
		if err != nil {
			return nil, err
		}
		switch status {
		case model.StatusFinished:
			return c.publish(ctx, igUserID, creationID, opts...)
		case model.StatusPublished:
			return alreadyPublished(creationID), nil
		case model.StatusError:
			return nil, repository.ErrContainerFailed
		case model.StatusExpired:
			return nil, repository.ErrContainerExpired
		}

		if !c.now().Add(interval).Before(deadline) {
			return nil, repository.ErrPollBudgetExceeded
		}
		if err := c.sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}
