package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"
)

// accounts lists the Facebook Pages the token holder manages, with the
// connected Instagram account expanded.
func (c *Client) accounts(ctx context.Context, opts ...repository.CallOption) (dto.PageAccounts, error) {
	var pages dto.PageAccounts
	params := url.Values{}
	params.Set("fields", "id,name,access_token,instagram_business_account{id,username}")

	payload, err := c.Do(ctx, "GET", "me/accounts", params, nil, opts...)
	if err != nil {
		return pages, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return pages, err
	}
	if err := json.Unmarshal(raw, &pages); err != nil {
		return pages, err
	}
	return pages, nil
}

// InstagramUserID returns the effective Instagram business account id:
// caller-provided, configured, stored, or auto-detected from the managed
// pages. Successful detections are persisted.
func (c *Client) InstagramUserID(ctx context.Context, provided string) (string, error) {
	if provided != "" {
		return provided, nil
	}
	if c.igUserID != "" {
		return c.igUserID, nil
	}
	rec := c.store.Load(ctx)
	if rec.InstagramUserID != "" {
		return rec.InstagramUserID, nil
	}

	pages, err := c.accounts(ctx)
	if err != nil {
		return "", err
	}
	for _, page := range pages.Data {
		if page.InstagramBusinessAccount != nil && page.InstagramBusinessAccount.ID != "" {
			id := page.InstagramBusinessAccount.ID
			c.store.Save(ctx, model.TokenUpdate{InstagramUserID: id})
			return id, nil
		}
	}
	return "", errors.New("no Instagram business account found. Connect an Instagram professional account to one of your Facebook Pages, or set INSTAGRAM_USER_ID")
}

// PageForIGAccount finds the Facebook Page owning the given Instagram
// account, preferring stored and env-provided bindings over a live lookup.
// Lookups are best-effort: a zero binding means not found, never an error.
func (c *Client) PageForIGAccount(ctx context.Context, igUserID string) model.PageBinding {
	rec := c.store.Load(ctx)
	if rec.PageAccessToken != "" && rec.FacebookPageID != "" {
		return model.PageBinding{
			PageID:          rec.FacebookPageID,
			PageAccessToken: rec.PageAccessToken,
			InstagramUserID: rec.InstagramUserID,
		}
	}
	if token, pageID := os.Getenv("INSTAGRAM_PAGE_ACCESS_TOKEN"), os.Getenv("FACEBOOK_PAGE_ID"); token != "" && pageID != "" {
		return model.PageBinding{PageID: pageID, PageAccessToken: token, InstagramUserID: igUserID}
	}

	pages, err := c.accounts(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to list pages for page token lookup")
		return model.PageBinding{}
	}

	binding := selectPage(pages.Data, igUserID)
	if binding.Found() {
		c.store.Save(ctx, model.TokenUpdate{
			PageAccessToken: binding.PageAccessToken,
			FacebookPageID:  binding.PageID,
		})
	}
	return binding
}

// selectPage picks the page binding. An exact Instagram account match wins.
// Without a target account, the first page with a connected Instagram account
// is used. When a target was given and no page owns it, the first page is
// returned without an Instagram identity: the binding must not claim an
// account it does not match, and the caller may wire the account manually.
func selectPage(pages []dto.PageAccount, igUserID string) model.PageBinding {
	var withIG, first *dto.PageAccount
	for i := range pages {
		page := &pages[i]
		if page.AccessToken == "" {
			continue
		}
		if first == nil {
			first = page
		}
		if page.InstagramBusinessAccount != nil && page.InstagramBusinessAccount.ID != "" {
			if igUserID != "" && page.InstagramBusinessAccount.ID == igUserID {
				return bindingFor(page)
			}
			if withIG == nil {
				withIG = page
			}
		}
	}
	if igUserID == "" && withIG != nil {
		return bindingFor(withIG)
	}
	if first != nil {
		binding := bindingFor(first)
		if igUserID != "" {
			binding.InstagramUserID = ""
		}
		return binding
	}
	return model.PageBinding{}
}

func bindingFor(page *dto.PageAccount) model.PageBinding {
	binding := model.PageBinding{PageID: page.ID, PageAccessToken: page.AccessToken}
	if page.InstagramBusinessAccount != nil {
		binding.InstagramUserID = page.InstagramBusinessAccount.ID
	}
	return binding
}
