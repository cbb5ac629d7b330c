package httpserver

import (
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
)

var _ = ginkgo.Describe("Metrics", func() {
	ginkgo.Context("MetricsMiddleware", func() {
		ginkgo.It("should pass the response through and initialize instruments", func() {
			reader := metric.NewManualReader()
			otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(reader)))
			ResetMetricsForTesting()

			handler := MetricsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte("created"))
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/insurance/forms/submit", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(rec.Body.String()).To(gomega.Equal("created"))
			gomega.Expect(IsMetricsInitialized()).To(gomega.BeTrue())
		})
	})

	ginkgo.DescribeTable("normalizeEndpoint",
		func(path, expected string) {
			gomega.Expect(normalizeEndpoint(path)).To(gomega.Equal(expected))
		},
		ginkgo.Entry("root path", "/", "root"),
		ginkgo.Entry("empty path", "", "root"),
		ginkgo.Entry("static endpoint", "/api/insurance/forms", "/api/insurance/forms"),
		ginkgo.Entry("form type is kept", "/api/insurance/forms/health", "/api/insurance/forms/health"),
		ginkgo.Entry("numeric id", "/api/insurance/submissions/42", "/api/insurance/submissions/_id"),
		ginkgo.Entry("numeric id in the middle", "/api/insurance/templates/7/fields", "/api/insurance/templates/_id/fields"),
		ginkgo.Entry("consecutive numeric ids", "/a/1/2", "/a/_id/_id"),
		ginkgo.Entry("uuid", "/api/insurance/submissions/123e4567-e89b-12d3-a456-426614174000", "/api/insurance/submissions/_id"),
	)

	ginkgo.Context("responseWriter", func() {
		var (
			recorder      *httptest.ResponseRecorder
			wrappedWriter *responseWriter
		)

		ginkgo.BeforeEach(func() {
			recorder = httptest.NewRecorder()
			wrappedWriter = &responseWriter{ResponseWriter: recorder, statusCode: http.StatusOK}
		})

		ginkgo.It("should record the status code", func() {
			wrappedWriter.WriteHeader(http.StatusNotFound)
			gomega.Expect(wrappedWriter.statusCode).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should fail to hijack a recorder", func() {
			_, _, err := wrappedWriter.Hijack()
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("does not support hijacking")))
		})
	})
})
