package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects writes without an Idempotency-Key and
// replays the stored response for a repeated key. A double-submitted bill
// save must not create two bills; the second submit gets the first
// response back instead of reaching the backend again.
func IdempotencyRequired(store *localstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		emailValue, exists := c.Get("session_email")
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		email := emailValue.(string)

		existing, err := store.GetIdempotencyKey(key, email)
		if err == nil && existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are replayable; a failed save should
		// go through again on retry with the same key.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = store.PutIdempotencyKey(&entity.IdempotencyKey{
				Key:          key,
				UserEmail:    email,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			})
		}
	}
}
