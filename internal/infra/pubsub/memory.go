package pubsub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrTopicBufferFull = errors.New("topic channel buffer full")

const _memoryTopicBuffer = 100

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

// MemoryPublisherFactory is used for local runs and tests
type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory() *MemoryPublisherFactory {
	return &MemoryPublisherFactory{
		broker: GetMemoryBroker(),
	}
}

func (f *MemoryPublisherFactory) New(topic Topic, _ Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	envelope, err := NewEnvelope(ctx, message)
	if err != nil {
		return err
	}
	return p.broker.Publish(p.topic, key, envelope)
}

var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

func NewMemoryConsumerFactory(group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{
		broker: GetMemoryBroker(),
		group:  group,
	}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{
		broker: f.broker,
		group:  f.group,
	}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	consumer := c.broker.Subscribe(topic, c.group, handler, prototype)

	go func() {
		<-ctx.Done()
		c.broker.Unsubscribe(topic, consumer)
	}()

	return nil
}

// MemoryBroker is a process-wide broker shared by memory publishers and consumers
type MemoryBroker struct {
	topics map[Topic]*topicState
	mu     sync.RWMutex
}

type topicState struct {
	queue     chan messageEvent
	consumers []*consumerInfo
	once      sync.Once
}

type messageEvent struct {
	key      Key
	envelope Envelope
}

type consumerInfo struct {
	group     string
	handler   MessageHandler
	prototype Prototype
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = &MemoryBroker{
			topics: make(map[Topic]*topicState),
		}
	})
	return memoryBroker
}

func (b *MemoryBroker) topic(topic Topic) *topicState {
	state, exists := b.topics[topic]
	if !exists {
		state = &topicState{queue: make(chan messageEvent, _memoryTopicBuffer)}
		b.topics[topic] = state
	}
	state.once.Do(func() { go b.dispatch(topic, state) })
	return state
}

func (b *MemoryBroker) Publish(topic Topic, key Key, envelope Envelope) error {
	b.mu.Lock()
	state := b.topic(topic)
	b.mu.Unlock()

	select {
	case state.queue <- messageEvent{key: key, envelope: envelope}:
		return nil
	default:
		return ErrTopicBufferFull
	}
}

func (b *MemoryBroker) Subscribe(topic Topic, group string, handler MessageHandler, prototype Prototype) *consumerInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	consumer := &consumerInfo{group: group, handler: handler, prototype: prototype}
	state := b.topic(topic)
	state.consumers = append(state.consumers, consumer)
	return consumer
}

func (b *MemoryBroker) Unsubscribe(topic Topic, consumer *consumerInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, exists := b.topics[topic]
	if !exists {
		return
	}

	kept := state.consumers[:0]
	for _, c := range state.consumers {
		if c != consumer {
			kept = append(kept, c)
		}
	}
	state.consumers = kept
}

// dispatch delivers each message once per consumer group, in publish order.
func (b *MemoryBroker) dispatch(topic Topic, state *topicState) {
	for event := range state.queue {
		b.mu.RLock()
		byGroup := make(map[string]*consumerInfo)
		for _, c := range state.consumers {
			if _, seen := byGroup[c.group]; !seen {
				byGroup[c.group] = c
			}
		}
		b.mu.RUnlock()

		for _, c := range byGroup {
			b.deliver(topic, c, event)
		}
	}
}

func (b *MemoryBroker) deliver(topic Topic, c *consumerInfo, event messageEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in message handler", slog.String("topic", string(topic)), slog.Any("panic", r))
		}
	}()

	value, err := event.envelope.Open(c.prototype)
	if err != nil {
		slog.Error("decoding message", slog.String("topic", string(topic)), slog.String("error", err.Error()))
		return
	}

	ctx := InjectTraceIntoContext(context.Background(), event.envelope.Trace)
	if err := c.handler(ctx, event.key, value); err != nil {
		slog.Error("error in message handler", slog.String("topic", string(topic)), slog.String("error", err.Error()))
	}
}

// Reset drops every consumer. Meant for tests.
func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, state := range b.topics {
		state.consumers = nil
	}
}
