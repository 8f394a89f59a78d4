package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiskr/backend/internal/auth"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "http://localhost:8081",
			allowedOrigins: []string{"http://localhost:8081"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "exp://192.168.1.20:8081",
			allowedOrigins: []string{"exp://*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:8081",
			allowedOrigins: []string{"exp://*", "http://localhost:8081"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"exp://*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"exp://*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "exp://192.168.1.20:8081",
			allowedOrigins: []string{},
			want:           false,
		},
		{
			name:           "exact entry is not a prefix",
			origin:         "http://localhost:80810",
			allowedOrigins: []string{"http://localhost:8081"},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, tt.allowedOrigins); got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{"allowed origin - GET request", "exp://10.0.0.2:8081", http.MethodGet, http.StatusOK, true},
		{"allowed origin - OPTIONS request", "exp://10.0.0.2:8081", http.MethodOptions, http.StatusNoContent, true},
		{"disallowed origin", "http://evil.com", http.MethodGet, http.StatusOK, false},
		{"no origin header", "", http.MethodGet, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware([]string{"exp://*"}))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORS {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(LoggerMiddleware(logger))
	router.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/items/:id"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"method":"GET"`)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	newRouter := func(perMinute int) *gin.Engine {
		router := gin.New()
		router.Use(RateLimitMiddleware(perMinute))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	do := func(router *gin.Engine, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("burst then limited", func(t *testing.T) {
		router := newRouter(3)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, do(router, "10.0.0.1"))
		}
		assert.Equal(t, http.StatusTooManyRequests, do(router, "10.0.0.1"))
	})

	t.Run("limits are per client ip", func(t *testing.T) {
		router := newRouter(1)
		assert.Equal(t, http.StatusOK, do(router, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, do(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, do(router, "10.0.0.2"))
	})

	t.Run("zero disables", func(t *testing.T) {
		router := newRouter(0)
		for i := 0; i < 50; i++ {
			require.Equal(t, http.StatusOK, do(router, "10.0.0.1"))
		}
	})
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	l := newIPRateLimiter(10)
	l.idleTTL = time.Millisecond

	require.True(t, l.allow("10.0.0.1"))
	time.Sleep(5 * time.Millisecond)
	require.True(t, l.allow("10.0.0.2"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.limiters, "10.0.0.1")
	assert.Contains(t, l.limiters, "10.0.0.2")
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")

	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, currentUserID(c))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token sets user", func(t *testing.T) {
		tok, err := tokens.Sign("user-1", "a@example.com", time.Hour)
		require.NoError(t, err)

		w := do("Bearer " + tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("no token is anonymous", func(t *testing.T) {
		w := do("")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		w := do("Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		tok, err := auth.NewTokenService("other").Sign("user-1", "", time.Hour)
		require.NoError(t, err)

		w := do("Bearer " + tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := tokens.Sign("user-1", "", -time.Minute)
		require.NoError(t, err)

		w := do("Bearer " + tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
