package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingController struct{}

func (pingController) AddRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /ping/{name}", func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"pong": r.PathValue("name")})
	})
}

var _ = ginkgo.Describe("HTTPServer", func() {
	var (
		tp       *trace.TracerProvider
		recorder *tracetest.SpanRecorder
	)

	ginkgo.BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		otel.SetTracerProvider(tp)
	})

	ginkgo.AfterEach(func() {
		tp.Shutdown(context.Background())
	})

	ginkgo.Context("TracingMiddleware", func() {
		ginkgo.It("should add a span to the request context", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(GetSpanFromContext(r).SpanContext().HasSpanID()).To(gomega.BeTrue())
				w.WriteHeader(http.StatusTeapot)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTeapot))
			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(recorder.Ended()[0].Name()).To(gomega.Equal("http.request"))
		})

		ginkgo.It("should inject b3 headers in the response", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			injected := rec.Header().Get("X-B3-TraceId") + rec.Header().Get("b3")
			gomega.Expect(injected).NotTo(gomega.BeEmpty())
		})
	})

	ginkgo.Context("GetSpanFromContext", func() {
		ginkgo.It("should return a no-op span when none is in context", func() {
			span := GetSpanFromContext(httptest.NewRequest(http.MethodGet, "/test", nil))
			gomega.Expect(span).NotTo(gomega.BeNil())
			gomega.Expect(span.SpanContext().IsValid()).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("NewServer", func() {
		var handler http.Handler

		ginkgo.BeforeEach(func() {
			handler = NewServer(ServerOptions{}, pingController{}).Handler()
		})

		ginkgo.It("should serve healthz", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("success"))
		})

		ginkgo.It("should mount controller routes", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/forms", nil))

			var body map[string]string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body["pong"]).To(gomega.Equal("forms"))
		})

		ginkgo.It("should answer CORS preflight for allowed origins", func() {
			req := httptest.NewRequest(http.MethodOptions, "/ping/forms", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			gomega.Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(gomega.Equal("http://localhost:3000"))
		})
	})
})
