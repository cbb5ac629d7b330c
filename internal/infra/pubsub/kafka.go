package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	_defaultMaxRetries   = 10
	_defaultRetryBackoff = 5 * time.Second
)

type publisherKey struct {
	brokers string
	topic   string
}

type publisherInstance struct {
	publisher *SimpleKafkaPublisher
	once      sync.Once
	err       error
}

// publishersMap keeps one emitter per brokers/topic pair
var (
	publishersMap   = make(map[publisherKey]*publisherInstance)
	publishersMutex sync.Mutex
)

type KafkaOptions struct {
	Brokers      []string
	MaxRetries   int
	RetryBackoff time.Duration
	// Registry switches message values to the Confluent wire format.
	// Without it values are plain Avro.
	Registry SchemaRegistry
}

func (o KafkaOptions) codecFor(topic string) Codec {
	if o.Registry == nil {
		return &AvroCodec{}
	}
	return NewConfluentCodec(o.Registry, topic)
}

func (o KafkaOptions) withDefaults() KafkaOptions {
	if o.MaxRetries <= 0 {
		o.MaxRetries = _defaultMaxRetries
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = _defaultRetryBackoff
	}
	return o
}

func NewKafkaPublisher(opts KafkaOptions, topic string) (*SimpleKafkaPublisher, error) {
	opts = opts.withDefaults()
	key := publisherKey{
		brokers: strings.Join(opts.Brokers, ","),
		topic:   topic,
	}

	publishersMutex.Lock()
	instance, exists := publishersMap[key]
	if !exists {
		instance = &publisherInstance{}
		publishersMap[key] = instance
	}
	publishersMutex.Unlock()

	instance.once.Do(func() {
		slog.Debug("creating kafka publisher",
			slog.String("topic", topic),
			slog.String("brokers", key.brokers))

		var err error
		for try := 0; try < opts.MaxRetries; try++ {
			var emitter *goka.Emitter
			emitter, err = goka.NewEmitter(opts.Brokers, goka.Stream(topic), opts.codecFor(topic))
			if err == nil {
				instance.publisher = &SimpleKafkaPublisher{emitter}
				return
			}
			time.Sleep(opts.RetryBackoff)
		}

		instance.err = fmt.Errorf("imposible to connect to kafka brokers after %d retries: %w", opts.MaxRetries, err)
	})

	if instance.err != nil {
		return nil, instance.err
	}

	return instance.publisher, nil
}

var _ Publisher = (*SimpleKafkaPublisher)(nil)

type SimpleKafkaPublisher struct {
	emitter *goka.Emitter
}

func (p *SimpleKafkaPublisher) Publish(ctx context.Context, key Key, message Message) error {
	envelope, err := NewEnvelope(ctx, message)
	if err != nil {
		return err
	}

	slog.Debug("publishing message", slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), envelope); err != nil {
		slog.Error("emitting message", slog.String("error", err.Error()))
		return fmt.Errorf("emitting message: %w", err)
	}

	return nil
}

func (p *SimpleKafkaPublisher) Close() error {
	return p.emitter.Finish()
}

var _ Consumer = (*SimpleKafkaConsumer)(nil)

type SimpleKafkaConsumer struct {
	opts  KafkaOptions
	group goka.Group
}

func NewKafkaConsumer(opts KafkaOptions, group string) *SimpleKafkaConsumer {
	return &SimpleKafkaConsumer{
		opts:  opts,
		group: goka.Group(group),
	}
}

func (c *SimpleKafkaConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	cb := func(gctx goka.Context, msg any) {
		envelope, ok := msg.(*Envelope)
		if !ok {
			slog.Error("unexpected message type", slog.String("topic", string(topic)))
			return
		}

		value, err := envelope.Open(prototype)
		if err != nil {
			slog.Error("decoding message", slog.String("topic", string(topic)), slog.String("error", err.Error()))
			return
		}

		msgCtx := InjectTraceIntoContext(gctx.Context(), envelope.Trace)
		if err := handler(msgCtx, Key(gctx.Key()), value); err != nil {
			slog.Error("error in message handler", slog.String("topic", string(topic)), slog.String("error", err.Error()))
		}
	}

	gg := goka.DefineGroup(
		c.group,
		goka.Input(goka.Stream(topic), c.opts.codecFor(string(topic)), cb),
	)
	p, err := goka.NewProcessor(c.opts.Brokers, gg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	go func() {
		if err := p.Run(ctx); err != nil {
			slog.Error("kafka processor stopped", slog.String("group", string(c.group)), slog.String("error", err.Error()))
		}
	}()

	return nil
}
