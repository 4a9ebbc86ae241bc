package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/snake-api/internal/handler/dto"
	"github.com/yourusername/snake-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExtractIDParam(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", ExtractIDParam("id", "itemID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("itemID").(int64)})
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "valid", path: "/items/42", wantStatus: http.StatusOK},
		{name: "negative parses", path: "/items/-1", wantStatus: http.StatusOK},
		{name: "letters", path: "/items/abc", wantStatus: http.StatusUnprocessableEntity},
		{name: "float", path: "/items/1.5", wantStatus: http.StatusUnprocessableEntity},
		{name: "overflow", path: "/items/99999999999999999999", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.path, nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, dto.CodeValidation, resp.Error.Code)
				require.Len(t, resp.Error.Details, 1)
				assert.Equal(t, "id", resp.Error.Details[0].Field)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("keeps client id", func(t *testing.T) {
		w := serve(router, "/", map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := serve(router, "/", nil)
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		long := strings.Repeat("x", 200)
		w := serve(router, "/", map[string]string{RequestIDHeader: long})
		assert.NotEqual(t, long, w.Header().Get(RequestIDHeader))
	})
}

func TestRequestLoggerAndMetrics_PassThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger.NewNop()), Metrics())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(router, "/ok", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "/missing", nil).Code)
}
