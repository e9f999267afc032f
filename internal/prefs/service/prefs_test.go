package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newDegradedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	NewPrefsService(nil, nil).RegisterRoutes(api)
	return router
}

func TestPrefsService_UnavailableWithoutDatabase(t *testing.T) {
	router := newDegradedRouter()

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/api/preferences/client-1", ""},
		{http.MethodPut, "/api/preferences/client-1", `{"default_limit": 5}`},
		{http.MethodPost, "/api/analytics/events", `{"client_id": "c", "event_type": "search"}`},
		{http.MethodGet, "/api/analytics/summary", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	}
}
