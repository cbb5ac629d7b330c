package usecases_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("HTTPOptionFetcher", func() {
	var fetcher *usecases.HTTPOptionFetcher

	serve := func(status int, body string) *httptest.Server {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		ginkgo.DeferCleanup(server.Close)
		return server
	}

	ginkgo.BeforeEach(func() {
		fetcher = usecases.NewHTTPOptionFetcher(time.Second)
	})

	ginkgo.It("should accept a wrapped options object", func() {
		server := serve(http.StatusOK, `{"options":[{"label":"France","value":"fr"}]}`)

		options, err := fetcher.LoadOptions(context.Background(), server.URL)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(options).To(gomega.Equal([]domain.Option{{Label: "France", Value: "fr"}}))
	})

	ginkgo.It("should accept a bare list", func() {
		server := serve(http.StatusOK, ` [{"label":"Spain","value":"es"}]`)

		options, err := fetcher.LoadOptions(context.Background(), server.URL)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(options).To(gomega.Equal([]domain.Option{{Label: "Spain", Value: "es"}}))
	})

	ginkgo.DescribeTable("failures",
		func(status int, body string) {
			server := serve(status, body)

			_, err := fetcher.LoadOptions(context.Background(), server.URL)

			gomega.Expect(err).To(gomega.HaveOccurred())
		},
		ginkgo.Entry("server error", http.StatusInternalServerError, `{"options":[]}`),
		ginkgo.Entry("object without options", http.StatusOK, `{"items":[]}`),
		ginkgo.Entry("scalar", http.StatusOK, `"nope"`),
		ginkgo.Entry("broken json", http.StatusOK, `[{"label":`),
		ginkgo.Entry("empty body", http.StatusOK, ``),
	)

	ginkgo.It("should fail on unreachable endpoints", func() {
		_, err := fetcher.LoadOptions(context.Background(), "http://127.0.0.1:1/options")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
