package pubsub_test

import (
	"context"
	"time"

	"insurance-server/internal/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type testEvent struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type received struct {
	key   pubsub.Key
	value any
}

var _ = ginkgo.Describe("Memory PubSub", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		topic  pubsub.Topic
	)

	ginkgo.BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		topic = pubsub.Topic("test-" + ginkgo.CurrentSpecReport().LeafNodeText)
	})

	ginkgo.AfterEach(func() {
		cancel()
	})

	subscribe := func(group string) chan received {
		messages := make(chan received, 10)
		consumer := pubsub.NewMemoryConsumerFactory(group).New()
		err := consumer.Consume(ctx, topic, func(_ context.Context, key pubsub.Key, value pubsub.Prototype) error {
			messages <- received{key: key, value: value}
			return nil
		}, testEvent{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return messages
	}

	ginkgo.It("should deliver a decoded copy of the message", func() {
		messages := subscribe("group-a")

		publisher, err := pubsub.NewMemoryPublisherFactory().New(topic, testEvent{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(publisher.Publish(ctx, "k1", testEvent{Name: "health", Count: 2})).To(gomega.Succeed())

		var msg received
		gomega.Eventually(messages, time.Second).Should(gomega.Receive(&msg))
		gomega.Expect(msg.key).To(gomega.Equal(pubsub.Key("k1")))
		gomega.Expect(msg.value).To(gomega.Equal(&testEvent{Name: "health", Count: 2}))
	})

	ginkgo.It("should deliver once per consumer group", func() {
		first := subscribe("group-a")
		second := subscribe("group-a")
		other := subscribe("group-b")

		publisher, _ := pubsub.NewMemoryPublisherFactory().New(topic, testEvent{})
		gomega.Expect(publisher.Publish(ctx, "k", testEvent{Name: "car"})).To(gomega.Succeed())

		gomega.Eventually(other, time.Second).Should(gomega.Receive())
		gomega.Eventually(func() int { return len(first) + len(second) }, time.Second).Should(gomega.Equal(1))
	})

	ginkgo.It("should stop delivering after the context is cancelled", func() {
		messages := subscribe("group-a")
		cancel()
		time.Sleep(20 * time.Millisecond)

		publisher, _ := pubsub.NewMemoryPublisherFactory().New(topic, testEvent{})
		gomega.Expect(publisher.Publish(context.Background(), "k", testEvent{Name: "home"})).To(gomega.Succeed())

		gomega.Consistently(messages, 100*time.Millisecond).ShouldNot(gomega.Receive())
	})
})
