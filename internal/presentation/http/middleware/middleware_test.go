package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/enum"
	"github.com/sangkips/logistics-api/internal/infrastructure/lock"
	"github.com/sangkips/logistics-api/internal/infrastructure/repository/memory"
	"github.com/sangkips/logistics-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withStaff(id uuid.UUID, role enum.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("staff_id", id)
		c.Set("role", string(role))
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	locker := lock.NewLocalLocker()
	staffID := uuid.New()

	calls := 0
	r := gin.New()
	r.Use(withStaff(staffID, enum.StaffRoleOperator))
	idem := Idempotency(IdempotencyConfig{
		Repo:   memory.NewIdempotencyRepository(memory.NewStore()),
		Locker: locker,
		Log:    log,
	})
	r.POST("/receipts", idem, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	r.POST("/receipts/:id/items", idem, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	key := map[string]string{IdempotencyKeyHeader: "abc"}

	first := serve(r, http.MethodPost, "/receipts", key)
	if first.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d", first.Code, http.StatusCreated)
	}

	t.Run("replays stored response", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/receipts", key)
		if w.Code != http.StatusCreated {
			t.Errorf("got status %d, want %d", w.Code, http.StatusCreated)
		}
		if w.Body.String() != first.Body.String() {
			t.Errorf("got body %s, want %s", w.Body.String(), first.Body.String())
		}
		if w.Header().Get(replayedHeader) != "true" {
			t.Error("replayed response is not marked")
		}
		if calls != 1 {
			t.Errorf("got %d handler calls, want 1", calls)
		}
	})

	t.Run("requests without a key run every time", func(t *testing.T) {
		before := calls
		serve(r, http.MethodPost, "/receipts", nil)
		serve(r, http.MethodPost, "/receipts", nil)
		if calls != before+2 {
			t.Errorf("got %d handler calls, want %d", calls, before+2)
		}
	})

	t.Run("key reused on another endpoint", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/receipts/"+uuid.NewString()+"/items", key)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("got status %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("key still in flight", func(t *testing.T) {
		release, err := locker.Obtain(context.Background(), "idempotency:"+staffID.String()+":busy", time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		defer release(context.Background())

		before := calls
		w := serve(r, http.MethodPost, "/receipts", map[string]string{IdempotencyKeyHeader: "busy"})
		if w.Code != http.StatusConflict {
			t.Errorf("got status %d, want %d", w.Code, http.StatusConflict)
		}
		if calls != before {
			t.Error("handler ran while the key was held")
		}
	})
}

func TestIdempotencySkipsServerErrors(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	calls := 0
	r := gin.New()
	r.Use(withStaff(uuid.New(), enum.StaffRoleOperator))
	r.POST("/receipts", Idempotency(IdempotencyConfig{
		Repo:   memory.NewIdempotencyRepository(memory.NewStore()),
		Locker: lock.NewLocalLocker(),
		Log:    log,
	}), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	key := map[string]string{IdempotencyKeyHeader: "retry-me"}
	if w := serve(r, http.MethodPost, "/receipts", key); w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if w := serve(r, http.MethodPost, "/receipts", key); w.Code != http.StatusCreated {
		t.Errorf("got status %d on retry, want %d", w.Code, http.StatusCreated)
	}
	if calls != 2 {
		t.Errorf("got %d handler calls, want 2", calls)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role     enum.StaffRole
		wantCode int
	}{
		{enum.StaffRoleAdmin, http.StatusOK},
		{enum.StaffRoleManager, http.StatusOK},
		{enum.StaffRoleOperator, http.StatusForbidden},
		{enum.StaffRoleClerk, http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			r := gin.New()
			r.Use(withStaff(uuid.New(), tt.role))
			r.GET("/staff", RequireRole(enum.StaffRoleAdmin, enum.StaffRoleManager), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := serve(r, http.MethodGet, "/staff", nil)
			if w.Code != tt.wantCode {
				t.Errorf("got status %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	staffID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(staffID, "jdoe", "EMP001", string(enum.StaffRoleClerk))
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtManager), func(c *gin.Context) {
		id, _ := c.Get("staff_id")
		c.String(http.StatusOK, "%s %s %s", id, c.GetString("employee_id"), c.GetString("role"))
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.header != "" {
				header["Authorization"] = tt.header
			}
			w := serve(r, http.MethodGet, "/me", header)
			if w.Code != tt.wantCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			want := staffID.String() + " EMP001 clerk"
			if w.Body.String() != want {
				t.Errorf("got %q, want %q", w.Body.String(), want)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodGet, "/ping", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
	w := serve(r, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("got status %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, 60)
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Errorf("got %v/s burst %d, want 2/s burst 120", cfg.RequestsPerSecond, cfg.BurstSize)
	}
	cfg = RateLimiterConfigFor(0, 0)
	if cfg.BurstSize != 100 {
		t.Errorf("got burst %d for unset config, want 100", cfg.BurstSize)
	}
}
