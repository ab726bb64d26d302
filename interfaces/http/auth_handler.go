package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/configuration"
	"instagram-gateway/infrastructure/logger"
	"instagram-gateway/infrastructure/utils"
)

type IAuthHandler interface {
	GetAuthURL(c *gin.Context)
	Callback(c *gin.Context)
	Status(c *gin.Context)
	Refresh(c *gin.Context)
}

type authHandler struct {
	graph   repository.IGraph
	store   repository.ITokenStore
	stateMu sync.Mutex
	states  map[string]time.Time // state -> expiry
}

func NewAuthHandler(graph repository.IGraph, store repository.ITokenStore) IAuthHandler {
	return &authHandler{graph: graph, store: store, states: map[string]time.Time{}}
}

const successPage = `<html><body style="font-family: sans-serif; text-align: center; padding-top: 4em;">
<h1>Authorization Successful</h1>
<p>Your Instagram access token has been saved. You can close this window.</p>
</body></html>`

const errorPage = `<html><body style="font-family: sans-serif; text-align: center; padding-top: 4em;">
<h1>Authorization Failed</h1>
<p>%s</p>
</body></html>`

// GetAuthURL builds the Facebook OAuth dialog URL (user must approve in
// browser). Each URL carries a one-shot state valid for 10 minutes.
func (h *authHandler) GetAuthURL(c *gin.Context) {
	conf := configuration.C.Graph
	if conf.ClientID == "" || conf.RedirectURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OAuth is not configured. Set OAUTH2_CLIENT_ID, OAUTH2_CLIENT_SECRET and OAUTH2_REDIRECT_URI."})
		return
	}

	state := utils.RandomState()
	h.stateMu.Lock()
	h.states[state] = time.Now().Add(10 * time.Minute)
	h.stateMu.Unlock()

	// Facebook wants the scope list comma-separated, so the whole string goes
	// in as a single scope element.
	oauthConf := oauth2.Config{
		ClientID:    conf.ClientID,
		RedirectURL: conf.RedirectURI,
		Scopes:      []string{conf.Scopes},
		Endpoint: oauth2.Endpoint{
			AuthURL: "https://www.facebook.com/" + conf.Version + "/dialog/oauth",
		},
	}

	c.JSON(http.StatusOK, gin.H{"auth_url": oauthConf.AuthCodeURL(state), "state": state})
}

// Callback receives the browser redirect, trades the code for a long-lived
// token, and answers with a human-readable page.
func (h *authHandler) Callback(c *gin.Context) {
	lg := logger.GetLogger()

	if denied := c.Query("error"); denied != "" {
		reason := c.Query("error_description")
		if reason == "" {
			reason = denied
		}
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(fmt.Sprintf(errorPage, reason)))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(fmt.Sprintf(errorPage, "Missing authorization code.")))
		return
	}

	state := c.Query("state")
	h.stateMu.Lock()
	exp, ok := h.states[state]
	if ok && time.Now().After(exp) {
		ok = false
	}
	if ok {
		delete(h.states, state)
	}
	h.stateMu.Unlock()
	if !ok {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(fmt.Sprintf(errorPage, "Invalid or expired state parameter. Request a new authorization URL.")))
		return
	}

	record, err := h.graph.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		lg.Errorf("Code exchange failed: %v", err)
		c.Data(http.StatusBadGateway, "text/html; charset=utf-8", []byte(fmt.Sprintf(errorPage, err.Error())))
		return
	}

	lg.WithField("instagramUserId", record.InstagramUserID).Info("OAuth flow completed")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
}

// Status reports which credentials are present, without exposing them.
func (h *authHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	record := h.store.Load(ctx)

	var expiresAt int64
	if record.SavedAt > 0 && record.ExpiresIn > 0 {
		expiresAt = record.SavedAt + record.ExpiresIn
	}

	c.JSON(http.StatusOK, gin.H{
		"has_access_token":   record.AccessToken != "",
		"has_refresh_token":  record.RefreshToken != "",
		"has_page_binding":   record.PageAccessToken != "" && record.FacebookPageID != "",
		"instagram_user_id":  record.InstagramUserID,
		"expires_at":         expiresAt,
		"needs_refresh_soon": h.graph.NeedsRefreshSoon(ctx),
	})
}

// Refresh forces a token refresh using the stored credentials.
func (h *authHandler) Refresh(c *gin.Context) {
	token := h.graph.RefreshToken(c.Request.Context(), "")
	if token == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Token refresh failed. Re-run the OAuth flow via /auth/url."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}
