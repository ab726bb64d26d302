package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"
)

// TokenFileStore persists credentials as a single JSON file. Saves are
// read-modify-write merges so concurrent writers never drop fields they
// did not set, and the file is replaced atomically via rename.
type TokenFileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewTokenFileStore(dir, file string) repository.ITokenStore {
	if file == "" {
		file = ".instagram_tokens.json"
	}
	if dir == "" {
		dir = "."
	}
	return &TokenFileStore{
		path: filepath.Join(dir, file),
		now:  time.Now,
	}
}

// Load returns the stored record, or a zero record when the file is missing
// or unreadable. Store failures never block credential resolution.
func (s *TokenFileStore) Load(_ context.Context) model.TokenRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *TokenFileStore) read() model.TokenRecord {
	var rec model.TokenRecord
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.GetLogger().WithField("error", err).Warn("Unable to read token file")
		}
		return rec
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Token file is not valid JSON; ignoring")
		return model.TokenRecord{}
	}
	return rec
}

// Save merges the update into the stored record. SavedAt is stamped only when
// a new access token is written. Set fields are also mirrored into process env
// so child lookups and legacy fallbacks observe the fresh values.
func (s *TokenFileStore) Save(_ context.Context, upd model.TokenUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.read()
	if upd.AccessToken != "" {
		rec.AccessToken = upd.AccessToken
		rec.SavedAt = s.now().Unix()
		_ = os.Setenv("INSTAGRAM_OAUTH_ACCESS_TOKEN", upd.AccessToken)
	}
	if upd.RefreshToken != "" {
		rec.RefreshToken = upd.RefreshToken
		_ = os.Setenv("INSTAGRAM_OAUTH_REFRESH_TOKEN", upd.RefreshToken)
	}
	if upd.ExpiresIn != 0 {
		rec.ExpiresIn = upd.ExpiresIn
	}
	if upd.PageAccessToken != "" {
		rec.PageAccessToken = upd.PageAccessToken
		_ = os.Setenv("INSTAGRAM_PAGE_ACCESS_TOKEN", upd.PageAccessToken)
	}
	if upd.FacebookPageID != "" {
		rec.FacebookPageID = upd.FacebookPageID
		_ = os.Setenv("FACEBOOK_PAGE_ID", upd.FacebookPageID)
	}
	if upd.InstagramUserID != "" {
		rec.InstagramUserID = upd.InstagramUserID
	}

	s.write(rec)
}

func (s *TokenFileStore) write(rec model.TokenRecord) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to encode token record")
		return
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".instagram_tokens-*.tmp")
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to create temp token file")
		return
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to write temp token file")
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return
	}
	if err := tmp.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to close temp token file")
		_ = os.Remove(tmpName)
		return
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to restrict token file permissions")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to replace token file")
		_ = os.Remove(tmpName)
	}
}
