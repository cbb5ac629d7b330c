package pubsub

import "fmt"

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

func NewKafkaPublisherFactory(opts KafkaOptions) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{opts: opts}
}

type KafkaPublisherFactory struct {
	opts KafkaOptions
}

func (f *KafkaPublisherFactory) New(topic Topic, _ Message) (Publisher, error) {
	publisher, err := NewKafkaPublisher(f.opts, string(topic))
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	return publisher, nil
}

var _ ConsumerFactory = (*KafkaConsumerFactory)(nil)

func NewKafkaConsumerFactory(opts KafkaOptions, group string) *KafkaConsumerFactory {
	return &KafkaConsumerFactory{
		opts:  opts,
		group: group,
	}
}

type KafkaConsumerFactory struct {
	opts  KafkaOptions
	group string
}

func (f *KafkaConsumerFactory) New() Consumer {
	return NewKafkaConsumer(f.opts, f.group)
}
