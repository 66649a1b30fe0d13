package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", BasicAuth("user", "pass"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestBasicAuthAccepts(t *testing.T) {
	r := setupAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("user", "pass")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuthRejects(t *testing.T) {
	r := setupAuthRouter()

	cases := []struct {
		name string
		set  func(*http.Request)
	}{
		{"missing header", func(*http.Request) {}},
		{"wrong password", func(req *http.Request) { req.SetBasicAuth("user", "nope") }},
		{"wrong user", func(req *http.Request) { req.SetBasicAuth("nope", "pass") }},
		{"garbage header", func(req *http.Request) { req.Header.Set("Authorization", "Basic !!!") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tc.set(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, `Basic realm="task-runner"`, w.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}
