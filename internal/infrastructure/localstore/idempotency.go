package localstore

import (
	"database/sql"
	"errors"
	"fmt"

	"mims-console/internal/domain/entity"
)

// GetIdempotencyKey returns a previously stored key, or nil when unseen.
func (s *Store) GetIdempotencyKey(key, userEmail string) (*entity.IdempotencyKey, error) {
	var k entity.IdempotencyKey
	err := s.db.Get(&k, `
		SELECT key, user_email, endpoint, response_code, response_body, expires_at
		FROM idempotency_keys WHERE key = ? AND user_email = ?`, key, userEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: get idempotency key: %w", err)
	}
	return &k, nil
}

// PutIdempotencyKey stores a processed request's response for replay.
func (s *Store) PutIdempotencyKey(k *entity.IdempotencyKey) error {
	const q = `
		INSERT INTO idempotency_keys (key, user_email, endpoint, response_code, response_body, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key, user_email) DO UPDATE SET
			endpoint = excluded.endpoint,
			response_code = excluded.response_code,
			response_body = excluded.response_body,
			expires_at = excluded.expires_at
	`
	_, err := s.db.Exec(q, k.Key, k.UserEmail, k.Endpoint, k.ResponseCode, k.ResponseBody, k.ExpiresAt)
	if err != nil {
		return fmt.Errorf("localstore: put idempotency key: %w", err)
	}
	return nil
}
