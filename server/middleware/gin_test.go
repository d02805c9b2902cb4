package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/arraygate/auth"
	"github.com/kbukum/arraygate/auth/authctx"
	"github.com/kbukum/arraygate/logger"
	"github.com/kbukum/arraygate/observability"
	"github.com/kbukum/arraygate/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// staticValidator accepts exactly one token and returns "alice".
var staticValidator = auth.TokenValidatorFunc(func(_ context.Context, token string) (any, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return "alice", nil
})

func authEngine(acceptBearer bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Auth(middleware.AuthConfig{Validator: staticValidator, AcceptBearerHeader: acceptBearer}))
	r.POST("/protected", func(c *gin.Context) {
		user, _ := authctx.Subject(c.Request.Context())
		var logged bytes.Buffer
		logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, &logged, "test").
			WithContext(c.Request.Context()).Info("handled")
		c.JSON(http.StatusOK, gin.H{"user": user, "log": logged.String()})
	})
	return r
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name         string
		acceptBearer bool
		query        string
		header       string
		wantCode     int
	}{
		{"query token", true, "?token=good", "", http.StatusOK},
		{"bearer header", true, "", "Bearer good", http.StatusOK},
		{"bearer lowercase scheme", true, "", "bearer good", http.StatusOK},
		{"query wins over header", true, "?token=bad", "Bearer good", http.StatusUnauthorized},
		{"bearer disabled", false, "", "Bearer good", http.StatusUnauthorized},
		{"missing token", true, "", "", http.StatusUnauthorized},
		{"empty query token", true, "?token=", "", http.StatusUnauthorized},
		{"bad token", true, "?token=bad", "", http.StatusUnauthorized},
		{"basic scheme", true, "", "Basic good", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/protected"+tc.query, http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			authEngine(tc.acceptBearer).ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var body map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["user"] != "alice" || !strings.Contains(body["log"], `"user_id":"alice"`) {
					t.Errorf("principal not propagated: %v", body)
				}
				return
			}

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error.Code != "INVALID_TOKEN" || body.Error.Message != "Invalid token" {
				t.Errorf("unexpected error body %+v", body.Error)
			}
		})
	}
}

func TestTracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	r := gin.New()
	r.Use(middleware.Tracing())
	r.POST("/sum-elements", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/sum-elements", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, p, http.NoBody))
	}

	ended := rec.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	if ended[0].Name() != "POST /sum-elements" || ended[0].Status().Code == codes.Error {
		t.Errorf("unexpected first span %q %v", ended[0].Name(), ended[0].Status())
	}
	if ended[1].Status().Code != codes.Error {
		t.Errorf("5xx should mark the span failed, got %v", ended[1].Status())
	}
}

func TestMetrics(t *testing.T) {
	m, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
