package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	bills := NewDomainGroup("bills", "/bills").
		GET("/pending", text("pending")).
		GET("/:id", text("bill"))
	memos := NewDomainGroup("memos", "/memos").
		GET("/by-number", text("by-number")).
		DELETE("/:id", text("undone"))

	NewRouter(engine).Register(bills, memos).Setup()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/bills/pending", "pending"},
		{http.MethodGet, "/api/v1/bills/42", "bill"},
		{http.MethodGet, "/api/v1/memos/by-number", "by-number"},
		{http.MethodDelete, "/api/v1/memos/7", "undone"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
	}

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/bills/42").Code)
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("order-forms", "/order-forms").
		GET("", text("get")).
		POST("", text("post")).
		PUT("/:id", text("put")).
		PATCH("/:id", text("patch")).
		DELETE("/:id", text("delete")).
		Handle(http.MethodPost, "/:id/delivered", text("delivered"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/order-forms", "get"},
		{http.MethodPost, "/api/v1/order-forms", "post"},
		{http.MethodPut, "/api/v1/order-forms/3", "put"},
		{http.MethodPatch, "/api/v1/order-forms/3", "patch"},
		{http.MethodDelete, "/api/v1/order-forms/3", "delete"},
		{http.MethodPost, "/api/v1/order-forms/3/delivered", "delivered"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("reports", "/reports")
	g.GET("/kinds", text("kinds"))
	pdf := g.Group("pdf", "/pdf")
	pdf.Use(func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", "20")
		c.Next()
	})
	pdf.POST("", text("pdf"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodPost, "/api/v1/reports/pdf")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20", w.Header().Get("X-RateLimit-Limit"))

	w = serve(engine, http.MethodGet, "/api/v1/reports/kinds")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"), "subgroup middleware must not leak to the parent")
}

func TestDomainGroupRoutes(t *testing.T) {
	g := NewDomainGroup("reports", "/reports")
	g.GET("/kinds", text(""))
	g.Group("pdf", "/pdf").POST("", text(""))

	assert.Equal(t, "reports", g.Name())
	assert.Equal(t, "/reports", g.Prefix())

	routes := g.Routes("/api/v1")
	require.Len(t, routes, 2)
	assert.Equal(t, Route{Method: http.MethodGet, Path: "/api/v1/reports/kinds"}, routes[0])
	assert.Equal(t, Route{Method: http.MethodPost, Path: "/api/v1/reports/pdf"}, routes[1])
}
