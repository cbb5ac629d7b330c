package pubsub

// Factory picks the in-memory broker for local runs or when no Kafka
// brokers are configured, and Kafka otherwise.
type Factory struct {
	publisherFactory PublisherFactory
	consumerFactory  ConsumerFactory
}

type FactoryOptions struct {
	Environment   string
	KafkaBrokers  []string
	ConsumerGroup string
	// SchemaRegistryURL is optional; see KafkaOptions.Registry.
	SchemaRegistryURL string
}

func NewFactory(opts FactoryOptions) *Factory {
	if opts.Environment == "local" || len(opts.KafkaBrokers) == 0 {
		return &Factory{
			publisherFactory: NewMemoryPublisherFactory(),
			consumerFactory:  NewMemoryConsumerFactory(opts.ConsumerGroup),
		}
	}

	kafka := KafkaOptions{Brokers: opts.KafkaBrokers}
	if opts.SchemaRegistryURL != "" {
		kafka.Registry = NewSchemaRegistry(opts.SchemaRegistryURL)
	}

	return &Factory{
		publisherFactory: NewKafkaPublisherFactory(kafka),
		consumerFactory:  NewKafkaConsumerFactory(kafka, opts.ConsumerGroup),
	}
}

func (f *Factory) GetPublisherFactory() PublisherFactory {
	return f.publisherFactory
}

func (f *Factory) GetConsumerFactory() ConsumerFactory {
	return f.consumerFactory
}
