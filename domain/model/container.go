package model

import "time"

// ContainerStatus is the processing state of a media container (creation_id)
// as reported by the Graph API status_code field.
type ContainerStatus string

const (
	StatusInProgress ContainerStatus = "IN_PROGRESS"
	StatusFinished   ContainerStatus = "FINISHED"
	StatusError      ContainerStatus = "ERROR"
	StatusExpired    ContainerStatus = "EXPIRED"
	StatusPublished  ContainerStatus = "PUBLISHED"
	StatusUnknown    ContainerStatus = "UNKNOWN"
)

// Terminal reports whether polling can stop at this status. IN_PROGRESS and
// UNKNOWN keep the poll loop running until the budget is spent.
func (s ContainerStatus) Terminal() bool {
	switch s {
	case StatusFinished, StatusError, StatusExpired, StatusPublished:
		return true
	}
	return false
}

// Publishable reports whether the container can be handed to media_publish.
func (s ContainerStatus) Publishable() bool {
	return s == StatusFinished
}

// PublishEvent is emitted to the configured notifiers after a container has
// been published successfully.
type PublishEvent struct {
	MediaID         string    `json:"media_id"`
	CreationID      string    `json:"creation_id"`
	InstagramUserID string    `json:"instagram_user_id"`
	PublishedAt     time.Time `json:"published_at"`
}
