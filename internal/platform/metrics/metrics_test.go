package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCollector()
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/metrics", gin.WrapH(c.Handler()))
	r.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	// Generate one request worth of metrics
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The counter must show up on the scrape endpoint with route labels
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rehablog_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="/ping"`)
}

func TestCollector_UnmatchedRoutesAreGrouped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCollector()
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/metrics", gin.WrapH(c.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `route="unmatched"`)
}
