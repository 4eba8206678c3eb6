package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbar/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(NewRateLimiter(1, 2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestAuthMiddleware(t *testing.T) {
	issuer, err := services.NewTokenIssuer("0123456789abcdef0123456789abcdef", "", time.Hour)
	require.NoError(t, err)
	token, err := issuer.GenerateToken("menubar")
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(issuer, NewSecurityLogger()))
	r.GET("/", func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(*services.ClientClaims)
		c.String(http.StatusOK, claims.ClientName)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "menubar", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(nil, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginChecker(t *testing.T) {
	check := OriginChecker([]string{"http://localhost:3000", "menubar.local"})

	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, check(req("http://localhost:3000")))
	assert.True(t, check(req("http://localhost:3000/")))
	assert.True(t, check(req("https://menubar.local")))
	assert.True(t, check(req("")))
	assert.False(t, check(req("http://evil.example")))

	assert.True(t, OriginChecker(nil)(req("http://anything")))
}

func TestValidateClientName(t *testing.T) {
	assert.True(t, ValidateClientName("menubar-01.local_x"))
	assert.False(t, ValidateClientName(""))
	assert.False(t, ValidateClientName("bad name"))
	assert.False(t, ValidateClientName("semi;colon"))
}
