package dto

// Request payloads for the tool surface. Every request may carry the shared
// per-call overrides: GraphAPIVersion and IGUserID are optional everywhere,
// with the account id auto-detected when absent.

type CreateContainerRequest struct {
	ImageURL       string
	VideoURL       string
	Caption        string
	MediaType      string
	ContentType    string
	CoverURL       string
	IsCarouselItem bool
	Children       []string
	LocationID     string
	ThumbOffset    int
	ShareToFeed    bool
	AudioName      string
	IGUserID       string
	GraphVersion   string
}

type CreateCarouselRequest struct {
	Children       []string
	ChildImageURLs []string
	ChildVideoURLs []string
	Caption        string
	IGUserID       string
	GraphVersion   string
}

type PublishRequest struct {
	CreationID      string
	MaxWaitSeconds  int
	PollIntervalSec int
	IGUserID        string
	GraphVersion    string
}

type MediaListRequest struct {
	Fields       string
	Limit        int
	After        string
	Before       string
	Since        string
	Until        string
	IGUserID     string
	GraphVersion string
}

type MediaRequest struct {
	MediaID      string
	Fields       string
	GraphVersion string
}

type CommentListRequest struct {
	MediaID      string
	CommentID    string
	Fields       string
	Limit        int
	After        string
	Before       string
	GraphVersion string
}

type CommentCreateRequest struct {
	MediaID      string
	CommentID    string
	Message      string
	GraphVersion string
}

type UserInsightsRequest struct {
	Metrics      []string
	Period       string
	MetricType   string
	Breakdown    string
	Since        string
	Until        string
	Timeframe    string
	IGUserID     string
	GraphVersion string
}

type MediaInsightsRequest struct {
	MediaID      string
	Metrics      []string
	Period       string
	GraphVersion string
}

type ConversationListRequest struct {
	PageID       string
	Limit        int
	After        string
	IGUserID     string
	GraphVersion string
}

type MessageListRequest struct {
	ConversationID string
	Limit          int
	After          string
	GraphVersion   string
}

type SendMessageRequest struct {
	RecipientID      string
	Text             string
	ImageURL         string
	ReplyToMessageID string
	IGUserID         string
	GraphVersion     string
}
