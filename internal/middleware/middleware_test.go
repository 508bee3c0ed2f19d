package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/trail-service/pkg/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String())
	})
	r.GET("/whoami", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	mgr := auth.NewJWTManager(testSecret, time.Hour)
	userID := uuid.New()
	token, _, err := mgr.Issue(userID, "alice")
	require.NoError(t, err)

	past := auth.NewJWTManager(testSecret, time.Hour, auth.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	expired, _, err := past.Issue(userID, "alice")
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(mgr))

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid", header: "Bearer " + token, wantCode: http.StatusOK, wantBody: userID.String()},
		{name: "missing", header: "", wantCode: http.StatusUnauthorized, wantBody: "missing or invalid token"},
		{name: "wrong scheme", header: "Basic " + token, wantCode: http.StatusUnauthorized, wantBody: "missing or invalid token"},
		{name: "garbage", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized, wantBody: "invalid token"},
		{name: "expired", header: "Bearer " + expired, wantCode: http.StatusUnauthorized, wantBody: "token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	mgr := auth.NewJWTManager(testSecret, time.Hour)
	userID := uuid.New()
	token, _, err := mgr.Issue(userID, "alice")
	require.NoError(t, err)

	r := newRouter(OptionalAuth(mgr))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	w = do(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/trails/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	reqID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/trails/"+uuid.NewString(), nil)
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, reqID, w.Header().Get(RequestIDHeader))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, reqID, entry.Data["request_id"])
	assert.Equal(t, "/trails/:id", entry.Data["path"])
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	for _, v := range entry.Data {
		assert.NotContains(t, fmt.Sprint(v), "secret-token")
	}
}

func TestRequestLogger_ReplacesForeignRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}
