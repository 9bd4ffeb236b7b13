package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(apperror.Conflict("User Already Exists", "The username 'ada' is taken."))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("pq: connection refused"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"status":409,"title":"User Already Exists","message":"The username 'ada' is taken."}}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(minted)
	require.NoError(t, err)
	assert.Equal(t, minted, w.Body.String())

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, inbound)
	assert.Equal(t, inbound, serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", serve(r, req).Header().Get(RequestIDHeader))
}

func TestRateLimiterInMemory(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	r := gin.New()
	r.Use(rl.Middleware(GlobalRateLimitConfig(2, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body struct {
		Error apperror.AppError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Error.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	assert.Equal(t, http.StatusOK, serve(r, other).Code, "limits are per client")
}

// headerIdentifier treats "Bearer <name>" as the user <name>.
type headerIdentifier struct{}

func (headerIdentifier) Identify(authHeader string) (auth.Principal, error) {
	name, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || name == "" {
		return auth.Principal{}, apperror.Unauthorized("token required")
	}
	return auth.User(name), nil
}

func TestUploadRateLimitCountsOwnerOnly(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	r := gin.New()
	r.Use(ErrorHandler())
	r.PUT("/users/:username/photo", rl.Middleware(UploadRateLimitConfig(2, time.Minute, headerIdentifier{})), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	upload := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/users/ada/photo", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		return serve(r, req)
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, upload("").Code, "anonymous requests are not counted")
		assert.Equal(t, http.StatusOK, upload("Bearer mallory").Code, "other users are not counted")
	}

	assert.Equal(t, http.StatusOK, upload("Bearer ada").Code)
	assert.Equal(t, http.StatusOK, upload("Bearer ada").Code)
	assert.Equal(t, http.StatusTooManyRequests, upload("Bearer ada").Code)
}

func TestInMemoryWindowResets(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	config := GlobalRateLimitConfig(1, time.Second)
	start := time.Now()

	count, _ := rl.checkInMemory("k", config, start)
	assert.Equal(t, 1, count)
	count, _ = rl.checkInMemory("k", config, start.Add(500*time.Millisecond))
	assert.Equal(t, 2, count)
	count, _ = rl.checkInMemory("k", config, start.Add(2*time.Second))
	assert.Equal(t, 1, count)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://jobs.example.com, https://admin.example.com/"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := serve(r, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}
