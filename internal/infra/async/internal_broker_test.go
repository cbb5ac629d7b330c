package async_test

import (
	"context"
	"time"

	"insurance-server/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local Broker", func() {
	var broker *async.LocalBroker
	var topic async.BrokerTopicName
	var ctx context.Context

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		topic = "insurance_submissions"
		ctx = context.TODO()
	})

	Context("Publish", func() {
		When("there are no subscribers", func() {
			It("should return an error", func() {
				err := broker.Publish(ctx, topic, async.BrokerMessage{Event: "submission_created"})
				Expect(err).To(MatchError(async.ErrTopicNotFound))
			})
		})

		When("there are subscribers", func() {
			It("should deliver the message to each of them", func() {
				first, err := broker.Subscribe(topic)
				Expect(err).NotTo(HaveOccurred())
				second, err := broker.Subscribe(topic)
				Expect(err).NotTo(HaveOccurred())

				Expect(broker.Publish(ctx, topic, async.BrokerMessage{Event: "submission_created", Value: 1})).To(Succeed())

				var msg async.BrokerMessage
				Eventually(first.Receiver, time.Second).Should(Receive(&msg))
				Expect(msg.Value).To(Equal(1))
				Eventually(second.Receiver, time.Second).Should(Receive())
			})
		})

		When("a subscriber does not read", func() {
			It("should not block the publisher", func() {
				_, err := broker.Subscribe(topic)
				Expect(err).NotTo(HaveOccurred())

				done := make(chan struct{})
				go func() {
					defer close(done)
					for range 100 {
						_ = broker.Publish(ctx, topic, async.BrokerMessage{Event: "tick"})
					}
				}()
				Eventually(done, time.Second).Should(BeClosed())
			})
		})
	})

	Context("Unsubscribe", func() {
		It("should close the receiver", func() {
			subscription, _ := broker.Subscribe(topic)
			Expect(broker.Unsubscribe(topic, subscription)).To(Succeed())
			Eventually(subscription.Receiver).Should(BeClosed())
		})

		It("should fail for unknown topics", func() {
			Expect(broker.Unsubscribe("unknown", async.Subscription{ID: "x"})).To(MatchError(async.ErrTopicNotFound))
		})

		It("should fail for unknown subscriptions", func() {
			_, _ = broker.Subscribe(topic)
			Expect(broker.Unsubscribe(topic, async.Subscription{ID: "x"})).To(MatchError(async.ErrSubscriptorNotFound))
		})
	})

	Context("Stop", func() {
		It("should close every receiver and refuse new subscriptions", func() {
			subscription, _ := broker.Subscribe(topic)
			broker.Stop()

			Eventually(subscription.Receiver).Should(BeClosed())
			_, err := broker.Subscribe(topic)
			Expect(err).To(MatchError(async.ErrBrokerStopped))
		})

		It("should be idempotent", func() {
			broker.Stop()
			Expect(broker.Stop).NotTo(Panic())
		})
	})
})
