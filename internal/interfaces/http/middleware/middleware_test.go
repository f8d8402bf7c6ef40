package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"github.com/khata/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := serve(r, req)
		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates a uuid", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("truncates long ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
		w := serve(r, req)
		assert.Len(t, w.Body.String(), MaxRequestIDLength)
	})
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://desk.local"}
	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://desk.local")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://desk.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://desk.local")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})
}

func TestSecure(t *testing.T) {
	r := gin.New()
	r.Use(Secure())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), BodyLimit(100))
	r.POST("/", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("within limit", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared length over limit", func(t *testing.T) {
		body := `{"a":"` + strings.Repeat("x", 200) + `"}`
		w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		resp := decode(t, w)
		assert.Equal(t, dto.StatusError, resp.Status)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Code)
		assert.NotEmpty(t, resp.RequestID)
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		body := `{"a":"` + strings.Repeat("x", 200) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req.ContentLength = -1
		w := serve(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSwaggerProtection(t *testing.T) {
	build := func(cfg SwaggerConfig) *gin.Engine {
		r := gin.New()
		r.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	get := func(r *gin.Engine, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = remote
		return serve(r, req)
	}

	assert.Equal(t, http.StatusNotFound, get(build(SwaggerConfig{}), "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, get(build(SwaggerConfig{Enabled: true}), "10.0.0.1:1000").Code)

	restricted := build(SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.1.0/24", "10.0.0.7", "bogus"}})
	assert.Equal(t, http.StatusOK, get(restricted, "192.168.1.44:1000").Code)
	assert.Equal(t, http.StatusOK, get(restricted, "10.0.0.7:1000").Code)
	assert.Equal(t, http.StatusForbidden, get(restricted, "10.0.0.8:1000").Code)
}

func TestValidationErrors(t *testing.T) {
	SetupValidator()
	type billReq struct {
		BillNumber string `json:"bill_number" binding:"required"`
		Amount     int64  `json:"amount" binding:"required,min=1"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req billReq
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":0}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)
	fields := map[string]string{}
	for _, d := range resp.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["bill_number"])
	assert.Contains(t, fields, "amount")

	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp = decode(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)
	assert.Empty(t, resp.Details)
	assert.Contains(t, resp.Message, "Malformed request")
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.Equal(t, 1, rl.Remaining("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Minute)
	assert.Equal(t, 2, rl.Remaining("a"))
	assert.True(t, rl.Allow("a"))

	t.Run("middleware", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID(), RateLimit(NewRateLimiter(1, time.Minute)))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

		w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode(t, w).Code)
	})
}

func TestTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	r := gin.New()
	r.Use(RequestID(), TracingWithConfig(TracingConfig{ServiceName: "khata-test", Enabled: true}), SpanErrorMarker())
	r.GET("/bills/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/bills/7", nil)
	req.Header.Set(RequestIDHeader, "trace-req")
	serve(r, req)
	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	var found bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == "request_id" {
			found = true
			assert.Equal(t, "trace-req", kv.Value.AsString())
		}
	}
	assert.True(t, found)
	assert.NotEqual(t, codes.Error, spans[1].Status().Code)

	t.Run("disabled passes through", func(t *testing.T) {
		r := gin.New()
		r.Use(TracingWithConfig(TracingConfig{}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	mw, err := HTTPMetrics(mp.Meter("http.server"))
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/bills/:id", func(c *gin.Context) { c.String(http.StatusOK, "bill") })
	serve(r, httptest.NewRequest(http.MethodGet, "/bills/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/bills/2", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_server_request_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value("http.route")
				assert.Equal(t, "/bills/:id", route.AsString())
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(201))
	assert.Equal(t, "3xx", StatusClass(304))
	assert.Equal(t, "4xx", StatusClass(409))
	assert.Equal(t, "5xx", StatusClass(503))
	assert.Equal(t, "other", StatusClass(100))
}

func TestProfiling(t *testing.T) {
	r := gin.New()
	r.Use(ProfilingWithConfig(DefaultProfilingConfig()))
	labelsOf := func(c *gin.Context) map[string]string {
		got := map[string]string{}
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			got[k] = v
			return true
		})
		return got
	}
	var seen map[string]string
	r.GET("/api/v1/bills/:id", func(c *gin.Context) { seen = labelsOf(c) })
	r.GET("/health", func(c *gin.Context) { seen = labelsOf(c) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/bills/3", nil))
	assert.Equal(t, "/api/v1/bills/:id", seen[telemetry.ProfilingLabelRoute])
	assert.Equal(t, http.MethodGet, seen[telemetry.ProfilingLabelMethod])

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, seen)
}
