package dto

// Wire types for the Facebook Graph API. Request structs carry `url` tags and
// are encoded with github.com/google/go-querystring; zero values are omitted.

// GraphError is the nested error body the Graph API returns on non-2xx
// responses. Only Message is load-bearing for user-facing error text.
type GraphError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

// TokenResponse is the payload of the oauth/access_token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// PageAccount is one entry of the me/accounts page listing.
type PageAccount struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	AccessToken              string `json:"access_token"`
	InstagramBusinessAccount *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"instagram_business_account"`
}

// PageAccounts is the me/accounts response envelope.
type PageAccounts struct {
	Data []PageAccount `json:"data"`
}

// ExchangeParams is the query for the code -> short-lived token call.
type ExchangeParams struct {
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	RedirectURI  string `url:"redirect_uri"`
	Code         string `url:"code"`
}

// LongLivedParams is the query for the fb_exchange_token grant, used both for
// the short->long-lived hop and for refreshes.
type LongLivedParams struct {
	GrantType    string `url:"grant_type"`
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	ExchangeTok  string `url:"fb_exchange_token"`
}

// ContainerParams is the form for POST {ig-user-id}/media.
type ContainerParams struct {
	MediaType      string `url:"media_type,omitempty"`
	ImageURL       string `url:"image_url,omitempty"`
	VideoURL       string `url:"video_url,omitempty"`
	Caption        string `url:"caption,omitempty"`
	CoverURL       string `url:"cover_url,omitempty"`
	ContentType    string `url:"content_type,omitempty"`
	IsCarouselItem bool   `url:"is_carousel_item,omitempty"`
	Children       string `url:"children,omitempty"`
	LocationID     string `url:"location_id,omitempty"`
	ThumbOffset    int    `url:"thumb_offset,omitempty"`
	ShareToFeed    bool   `url:"share_to_feed,omitempty"`
	AudioName      string `url:"audio_name,omitempty"`
}

// PublishParams is the form for POST {ig-user-id}/media_publish.
type PublishParams struct {
	CreationID string `url:"creation_id"`
}

// MediaListParams is the query for media collection reads.
type MediaListParams struct {
	Fields string `url:"fields,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	After  string `url:"after,omitempty"`
	Before string `url:"before,omitempty"`
	Since  string `url:"since,omitempty"`
	Until  string `url:"until,omitempty"`
}

// InsightsParams is the query for the insights edges.
type InsightsParams struct {
	Metric       string `url:"metric,omitempty"`
	MetricPreset string `url:"metric_preset,omitempty"`
	Period       string `url:"period,omitempty"`
	MetricType   string `url:"metric_type,omitempty"`
	Breakdown    string `url:"breakdown,omitempty"`
	Since        string `url:"since,omitempty"`
	Until        string `url:"until,omitempty"`
	Timeframe    string `url:"timeframe,omitempty"`
}

// ConversationParams is the query for the page conversations edge.
type ConversationParams struct {
	Platform string `url:"platform,omitempty"`
	Fields   string `url:"fields,omitempty"`
	Limit    int    `url:"limit,omitempty"`
	After    string `url:"after,omitempty"`
}
