package persistence

import (
	"context"
	"database/sql"
	"time"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"
)

// TokenRepositoryPg is the PostgreSQL-backed token store for deployments that
// cannot rely on a writable local filesystem. It keeps a single row per
// account slot and merges partial updates the same way the file store does.
type TokenRepositoryPg struct {
	db      *sql.DB
	account string
	now     func() time.Time
}

func NewTokenRepositoryPg(db *sql.DB) repository.ITokenStore {
	return &TokenRepositoryPg{db: db, account: "default", now: time.Now}
}

// EnsureTokenSchema creates the token table when missing. Safe to call at
// startup.
func EnsureTokenSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddl := `CREATE TABLE IF NOT EXISTS instagram_tokens (
		account TEXT PRIMARY KEY,
		access_token TEXT NOT NULL DEFAULT '',
		refresh_token TEXT NOT NULL DEFAULT '',
		expires_in BIGINT NOT NULL DEFAULT 0,
		access_token_saved_at BIGINT NOT NULL DEFAULT 0,
		page_access_token TEXT NOT NULL DEFAULT '',
		facebook_page_id TEXT NOT NULL DEFAULT '',
		instagram_user_id TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

func (r *TokenRepositoryPg) Load(ctx context.Context) model.TokenRecord {
	var rec model.TokenRecord
	row := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, expires_in, access_token_saved_at, page_access_token, facebook_page_id, instagram_user_id
		 FROM instagram_tokens WHERE account=$1`, r.account)
	err := row.Scan(&rec.AccessToken, &rec.RefreshToken, &rec.ExpiresIn, &rec.SavedAt,
		&rec.PageAccessToken, &rec.FacebookPageID, &rec.InstagramUserID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Warn("Unable to load token row")
		}
		return model.TokenRecord{}
	}
	return rec
}

func (r *TokenRepositoryPg) Save(ctx context.Context, upd model.TokenUpdate) {
	rec := r.Load(ctx)
	if upd.AccessToken != "" {
		rec.AccessToken = upd.AccessToken
		rec.SavedAt = r.now().Unix()
	}
	if upd.RefreshToken != "" {
		rec.RefreshToken = upd.RefreshToken
	}
	if upd.ExpiresIn != 0 {
		rec.ExpiresIn = upd.ExpiresIn
	}
	if upd.PageAccessToken != "" {
		rec.PageAccessToken = upd.PageAccessToken
	}
	if upd.FacebookPageID != "" {
		rec.FacebookPageID = upd.FacebookPageID
	}
	if upd.InstagramUserID != "" {
		rec.InstagramUserID = upd.InstagramUserID
	}

	q := `INSERT INTO instagram_tokens (account, access_token, refresh_token, expires_in, access_token_saved_at, page_access_token, facebook_page_id, instagram_user_id, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		  ON CONFLICT (account) DO UPDATE SET
			access_token=EXCLUDED.access_token,
			refresh_token=EXCLUDED.refresh_token,
			expires_in=EXCLUDED.expires_in,
			access_token_saved_at=EXCLUDED.access_token_saved_at,
			page_access_token=EXCLUDED.page_access_token,
			facebook_page_id=EXCLUDED.facebook_page_id,
			instagram_user_id=EXCLUDED.instagram_user_id,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, r.account, rec.AccessToken, rec.RefreshToken, rec.ExpiresIn,
		rec.SavedAt, rec.PageAccessToken, rec.FacebookPageID, rec.InstagramUserID, r.now().UTC())
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to upsert token row")
	}
}
