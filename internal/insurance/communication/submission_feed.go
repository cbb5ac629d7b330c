package communication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/pubsub"
	"insurance-server/internal/insurance/communication/internal"
)

const (
	FeedTopic              async.BrokerTopicName = "insurance_submissions"
	SubmissionCreatedEvent                       = "submission_created"
)

func NewSubmissionFeed(factory pubsub.ConsumerFactory, broker async.InternalBroker) *SubmissionFeed {
	return &SubmissionFeed{
		consumer: factory.New(),
		broker:   broker,
	}
}

var _ async.Worker = (*SubmissionFeed)(nil)

// SubmissionFeed relays submission events from the message bus to local
// subscribers, so every node can push new submissions to its own clients.
type SubmissionFeed struct {
	consumer pubsub.Consumer
	broker   async.InternalBroker
	cancel   context.CancelFunc
	mu       sync.Mutex
}

func (f *SubmissionFeed) Run(ctx context.Context, done func()) {
	slog.Debug("submission feed started")
	defer done()

	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	if err := f.consumer.Consume(ctx, SubmissionsTopic, f.relay, internal.SubmissionEvent{}); err != nil {
		slog.Error("consuming submissions", slog.String("error", err.Error()))
		return
	}

	<-ctx.Done()
	slog.Info("submission feed cancelled")
}

func (f *SubmissionFeed) relay(ctx context.Context, _ pubsub.Key, message pubsub.Prototype) error {
	event, ok := message.(*internal.SubmissionEvent)
	if !ok {
		return fmt.Errorf("unexpected message type %T", message)
	}

	err := f.broker.Publish(ctx, FeedTopic, async.BrokerMessage{
		Event: SubmissionCreatedEvent,
		Value: event.ToDomain(),
	})
	if errors.Is(err, async.ErrTopicNotFound) {
		return nil
	}
	return err
}

func (f *SubmissionFeed) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
}
