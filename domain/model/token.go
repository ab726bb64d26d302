package model

// TokenRecord is the persisted credential bundle for one Instagram business
// account. All fields are optional; an empty record means "no credentials yet".
// JSON keys match the on-disk token file layout.
type TokenRecord struct {
	AccessToken     string `json:"access_token,omitempty"`
	RefreshToken    string `json:"refresh_token,omitempty"`
	ExpiresIn       int64  `json:"expires_in,omitempty"`
	SavedAt         int64  `json:"access_token_saved_at,omitempty"`
	PageAccessToken string `json:"page_access_token,omitempty"`
	FacebookPageID  string `json:"facebook_page_id,omitempty"`
	InstagramUserID string `json:"instagram_user_id,omitempty"`
}

// TokenUpdate carries a partial record for a merge-save. Zero-valued fields
// are treated as "not present" and leave the stored value untouched.
type TokenUpdate struct {
	AccessToken     string
	RefreshToken    string
	ExpiresIn       int64
	PageAccessToken string
	FacebookPageID  string
	InstagramUserID string
}

// PageBinding is the Facebook Page identity that owns a connected Instagram
// business account. The page access token is required for the conversations
// and messaging endpoints; the user token is not accepted there.
type PageBinding struct {
	PageID          string
	PageAccessToken string
	InstagramUserID string
}

// Found reports whether the binding carries a usable page identity.
func (b PageBinding) Found() bool {
	return b.PageID != "" && b.PageAccessToken != ""
}
