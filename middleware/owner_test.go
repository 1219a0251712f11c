package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyphera/delegatable/constants"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

func TestOwnerOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		ownerKey   string
		headerKey  string
		wantStatus int
	}{
		{
			name:       "matching key passes",
			ownerKey:   "super-secret",
			headerKey:  "super-secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key is forbidden",
			ownerKey:   "super-secret",
			headerKey:  "guess",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing header is forbidden",
			ownerKey:   "super-secret",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unconfigured key disables the surface",
			headerKey:  "anything",
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(middleware.OwnerOnlyMiddleware(tt.ownerKey))
			router.POST("/admin", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.headerKey != "" {
				req.Header.Set(constants.OwnerKeyHeader, tt.headerKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
