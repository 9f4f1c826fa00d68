package entity

import "time"

// IdempotencyKey records a processed mutating request so a duplicate
// submission replays the stored response instead of saving a second bill.
type IdempotencyKey struct {
	Key          string    `db:"key"`
	UserEmail    string    `db:"user_email"`
	Endpoint     string    `db:"endpoint"`
	ResponseCode int       `db:"response_code"`
	ResponseBody string    `db:"response_body"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// IsExpired returns true when the key has outlived its TTL.
func (k *IdempotencyKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}
