package communication_test

import (
	"context"
	"errors"

	"insurance-server/internal/infra/pubsub"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/communication/internal"
	"insurance-server/internal/insurance/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type recordingPublisher struct {
	key     pubsub.Key
	message pubsub.Message
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, key pubsub.Key, message pubsub.Message) error {
	p.key, p.message = key, message
	return p.err
}

type recordingFactory struct {
	topic     pubsub.Topic
	publisher *recordingPublisher
	err       error
}

func (f *recordingFactory) New(topic pubsub.Topic, _ pubsub.Message) (pubsub.Publisher, error) {
	f.topic = topic
	return f.publisher, f.err
}

var _ = ginkgo.Describe("SubmissionPublisher", func() {
	var (
		factory   *recordingFactory
		publisher *communication.SubmissionPublisher
	)

	ginkgo.BeforeEach(func() {
		factory = &recordingFactory{publisher: &recordingPublisher{}}

		var err error
		publisher, err = communication.NewSubmissionPublisher(factory)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.It("should publish on the submissions topic keyed by public id", func() {
		submission := domain.Submission{ID: 1, PublicID: "abc", Type: "car", Data: domain.Values{"a": domain.Bool(true)}}

		gomega.Expect(publisher.Publish(context.Background(), submission)).To(gomega.Succeed())

		gomega.Expect(factory.topic).To(gomega.Equal(communication.SubmissionsTopic))
		gomega.Expect(factory.publisher.key).To(gomega.Equal(pubsub.Key("abc")))
		event, ok := factory.publisher.message.(internal.SubmissionEvent)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(event.Type).To(gomega.Equal("car"))
	})

	ginkgo.It("should wrap publishing errors", func() {
		factory.publisher.err = errors.New("broker down")

		err := publisher.Publish(context.Background(), domain.Submission{PublicID: "x"})

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("broker down")))
	})

	ginkgo.It("should fail when the publisher cannot be created", func() {
		_, err := communication.NewSubmissionPublisher(&recordingFactory{err: errors.New("no brokers")})
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
