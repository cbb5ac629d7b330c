package async

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const _receiverBuffer = 32

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")
var ErrBrokerStopped = errors.New("broker stopped")

// LocalBroker fans messages out to in-process subscribers. Slow
// subscribers lose messages instead of blocking publishers.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]Subscription
	stopped      bool
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]Subscription),
	}
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return Subscription{}, ErrBrokerStopped
	}

	subscription := Subscription{
		ID:       uuid.NewString(),
		Receiver: make(chan BrokerMessage, _receiverBuffer),
	}
	b.subscriptors[topic] = append(b.subscriptors[topic], subscription)
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptions, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptions, func(s Subscription) bool { return s.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	close(subscriptions[index].Receiver)
	b.subscriptors[topic] = slices.Delete(subscriptions, index, index+1)
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	defer b.mu.RUnlock()

	subscriptions, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptions {
		select {
		case s.Receiver <- msg:
		default:
			slog.Warn("dropping message for slow subscriber",
				slog.String("topic", string(topic)),
				slog.String("subscription", s.ID))
		}
	}

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return
	}
	b.stopped = true

	for topic, subscriptions := range b.subscriptors {
		for _, s := range subscriptions {
			close(s.Receiver)
		}
		delete(b.subscriptors, topic)
	}
}
