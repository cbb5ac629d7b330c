package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"insurance-server/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RistrettoCache", func() {
	var (
		cacheInstance *cache.RistrettoCache
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		cacheInstance, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		cacheInstance.Close()
	})

	ginkgo.When("setting and getting a value", func() {
		ginkgo.It("should return the stored bytes", func() {
			gomega.Expect(cacheInstance.Set(ctx, "form:health", []byte(`{"type":"health"}`), time.Minute)).To(gomega.BeTrue())

			value, found := cacheInstance.Get(ctx, "form:health")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(string(value)).To(gomega.Equal(`{"type":"health"}`))
		})

		ginkgo.It("should report missing keys", func() {
			_, found := cacheInstance.Get(ctx, "missing")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.When("deleting a value", func() {
		ginkgo.It("should no longer be found", func() {
			cacheInstance.Set(ctx, "key", []byte("v"), time.Minute)
			cacheInstance.Delete(ctx, "key")

			_, found := cacheInstance.Get(ctx, "key")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.When("the context is cancelled", func() {
		ginkgo.It("should skip reads and writes", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			gomega.Expect(cacheInstance.Set(cancelled, "key", []byte("v"), time.Minute)).To(gomega.BeFalse())
			_, found := cacheInstance.Get(cancelled, "key")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("GetOrSet", func() {
		ginkgo.It("should call the loader once and serve later reads from cache", func() {
			var calls atomic.Int32
			loader := func() ([]byte, error) {
				calls.Add(1)
				return []byte("loaded"), nil
			}

			first, err := cacheInstance.GetOrSet(ctx, "forms", time.Minute, loader)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := cacheInstance.GetOrSet(ctx, "forms", time.Minute, loader)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(string(first)).To(gomega.Equal("loaded"))
			gomega.Expect(string(second)).To(gomega.Equal("loaded"))
			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
		})

		ginkgo.It("should collapse concurrent loads", func() {
			var calls atomic.Int32
			release := make(chan struct{})
			loader := func() ([]byte, error) {
				calls.Add(1)
				<-release
				return []byte("v"), nil
			}

			var wg sync.WaitGroup
			for range 5 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer ginkgo.GinkgoRecover()
					_, err := cacheInstance.GetOrSet(ctx, "hot", time.Minute, loader)
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
				}()
			}

			time.Sleep(50 * time.Millisecond)
			close(release)
			wg.Wait()

			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
		})

		ginkgo.It("should propagate loader errors without caching", func() {
			boom := errors.New("boom")
			_, err := cacheInstance.GetOrSet(ctx, "broken", time.Minute, func() ([]byte, error) { return nil, boom })
			gomega.Expect(err).To(gomega.MatchError(boom))

			_, found := cacheInstance.Get(ctx, "broken")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})
})
