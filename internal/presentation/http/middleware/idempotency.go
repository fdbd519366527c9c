package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/infrastructure/lock"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a stored response is replayed
	IdempotencyKeyTTL = 24 * time.Hour
	// idempotencyLockTTL bounds how long an in-flight request holds its key
	idempotencyLockTTL = 30 * time.Second

	replayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Locker lock.Locker
	Log    logrus.FieldLogger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a request already processed
// under the same Idempotency-Key and rejects a duplicate that arrives while
// the first one is still running. Requests without a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		staffIDValue, _ := c.Get("staff_id")
		staffID, ok := staffIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()

		if replay(c, config, key, staffID, endpoint) {
			return
		}

		release, err := config.Locker.Obtain(ctx, "idempotency:"+staffID.String()+":"+key, idempotencyLockTTL)
		switch {
		case errors.Is(err, lock.ErrNotObtained):
			response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
			c.Abort()
			return
		case err != nil:
			config.Log.WithError(err).Warn("idempotency lock unavailable, continuing without it")
		default:
			defer func() {
				if err := release(context.Background()); err != nil {
					config.Log.WithError(err).Warn("failed to release idempotency lock")
				}
			}()
			// the holder we waited on may have finished in the meantime
			if replay(c, config, key, staffID, endpoint) {
				return
			}
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}
		ikey := &entity.IdempotencyKey{
			Key:          key,
			StaffID:      staffID,
			Endpoint:     endpoint,
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Save(context.Background(), ikey); err != nil {
			config.Log.WithError(err).WithField("idempotency_key", key).Error("failed to store idempotent response")
		}
	}
}

// replay answers c from a stored response and reports whether it did.
func replay(c *gin.Context, config IdempotencyConfig, key string, staffID uuid.UUID, endpoint string) bool {
	ctx := c.Request.Context()
	existing, err := config.Repo.GetByKey(ctx, key, staffID)
	if err != nil {
		config.Log.WithError(err).Warn("idempotency lookup failed")
		return false
	}
	if existing == nil {
		return false
	}
	if existing.IsExpired() {
		if err := config.Repo.DeleteExpired(ctx); err != nil {
			config.Log.WithError(err).Warn("failed to purge expired idempotency keys")
		}
		return false
	}

	if existing.Endpoint != endpoint {
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
		c.Abort()
		return true
	}

	c.Header(replayedHeader, "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	c.Abort()
	return true
}
