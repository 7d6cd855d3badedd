package storage

import (
	"database/sql"
	"time"

	"migraph/internal/errors"
)

// APIKey is a stored API key record. The token itself is never stored; only
// its bcrypt hash and a short prefix for lookup.
type APIKey struct {
	KeyID       string     `json:"keyId"`
	Name        string     `json:"name"`
	TokenPrefix string     `json:"tokenPrefix"`
	TokenHash   string     `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
}

// CreateAPIKey inserts a new key record.
func (s *Store) CreateAPIKey(key *APIKey) error {
	_, err := s.conn.Exec(`
		INSERT INTO api_keys (key_id, name, token_prefix, token_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		key.KeyID, key.Name, key.TokenPrefix, key.TokenHash,
		key.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to store API key", err)
	}
	return nil
}

// ActiveKeysByPrefix returns non-revoked keys matching a token prefix.
// Multiple keys can share a prefix; the caller verifies the hash.
func (s *Store) ActiveKeysByPrefix(prefix string) ([]*APIKey, error) {
	rows, err := s.conn.Query(`
		SELECT key_id, name, token_prefix, token_hash, created_at
		FROM api_keys WHERE token_prefix = ? AND revoked_at IS NULL`, prefix)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to query API keys", err)
	}
	defer rows.Close()

	var keys []*APIKey
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, errors.New(errors.StoreUnavailable, "failed to scan API key", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ListAPIKeys returns every key record, newest first.
func (s *Store) ListAPIKeys() ([]*APIKey, error) {
	rows, err := s.conn.Query(`
		SELECT key_id, name, token_prefix, token_hash, created_at
		FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to list API keys", err)
	}
	defer rows.Close()

	keys := make([]*APIKey, 0)
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, errors.New(errors.StoreUnavailable, "failed to scan API key", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// RevokeAPIKey marks a key revoked; revoked keys no longer authenticate.
func (s *Store) RevokeAPIKey(keyID string) error {
	res, err := s.conn.Exec(`
		UPDATE api_keys SET revoked_at = ? WHERE key_id = ? AND revoked_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), keyID)
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to revoke API key", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to revoke API key", err)
	}
	if affected == 0 {
		return errors.New(errors.Unauthorized, "unknown or already revoked key id", nil)
	}
	return nil
}

func scanKey(rows *sql.Rows) (*APIKey, error) {
	var key APIKey
	var createdAt string
	if err := rows.Scan(&key.KeyID, &key.Name, &key.TokenPrefix, &key.TokenHash, &createdAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	key.CreatedAt = ts
	return &key, nil
}
