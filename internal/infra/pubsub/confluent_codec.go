package pubsub

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"
	"github.com/riferrei/srclient"
)

const (
	_magicByte     = 0
	_headerLength  = 5
	_subjectSuffix = "-value"
)

var ErrInvalidWireFormat = errors.New("invalid confluent wire format")

// SchemaRegistry is the subset of the Confluent schema registry client the
// codec needs.
type SchemaRegistry interface {
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

var _ SchemaRegistry = (*srclient.SchemaRegistryClient)(nil)

func NewSchemaRegistry(url string) *srclient.SchemaRegistryClient {
	return srclient.CreateSchemaRegistryClient(url)
}

var _ Codec = (*ConfluentCodec)(nil)

// ConfluentCodec writes envelopes in the Confluent wire format: a zero
// magic byte, the big endian schema id and the Avro body. The envelope
// schema is registered under "<topic>-value" on first use.
type ConfluentCodec struct {
	registry SchemaRegistry
	subject  string

	mu       sync.Mutex
	writerID int
	writer   *goavro.Codec

	readers sync.Map
}

func NewConfluentCodec(registry SchemaRegistry, topic string) *ConfluentCodec {
	return &ConfluentCodec{
		registry: registry,
		subject:  topic + _subjectSuffix,
	}
}

func (c *ConfluentCodec) writerSchema() (int, *goavro.Codec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writer != nil {
		return c.writerID, c.writer, nil
	}

	schema, err := c.registry.CreateSchema(c.subject, envelopeSchema, srclient.Avro)
	if err != nil {
		return 0, nil, fmt.Errorf("registering schema for %s: %w", c.subject, err)
	}

	codec, err := goavro.NewCodec(envelopeSchema)
	if err != nil {
		return 0, nil, fmt.Errorf("creating codec: %w", err)
	}

	c.writerID, c.writer = schema.ID(), codec
	c.readers.Store(schema.ID(), codec)
	return c.writerID, c.writer, nil
}

func (c *ConfluentCodec) readerSchema(id int) (*goavro.Codec, error) {
	if codec, ok := c.readers.Load(id); ok {
		return codec.(*goavro.Codec), nil
	}

	schema, err := c.registry.GetSchema(id)
	if err != nil {
		return nil, fmt.Errorf("fetching schema %d: %w", id, err)
	}

	codec, err := goavro.NewCodec(schema.Schema())
	if err != nil {
		return nil, fmt.Errorf("creating codec for schema %d: %w", id, err)
	}

	c.readers.Store(id, codec)
	return codec, nil
}

func (c *ConfluentCodec) Encode(value any) ([]byte, error) {
	envelope, err := envelopeOf(value)
	if err != nil {
		return nil, err
	}

	id, codec, err := c.writerSchema()
	if err != nil {
		return nil, err
	}

	header := make([]byte, _headerLength, _headerLength+len(envelope.Payload)+64)
	header[0] = _magicByte
	binary.BigEndian.PutUint32(header[1:], uint32(id))

	record := toAvroEnvelope(envelope)
	data, err := codec.BinaryFromNative(header, map[string]any{
		"trace_id":    record.TraceID,
		"span_id":     record.SpanID,
		"trace_flags": record.TraceFlags,
		"payload":     record.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding to Avro: %w", err)
	}
	return data, nil
}

func (c *ConfluentCodec) Decode(data []byte) (any, error) {
	if len(data) < _headerLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidWireFormat, len(data))
	}
	if data[0] != _magicByte {
		return nil, fmt.Errorf("%w: magic byte %d", ErrInvalidWireFormat, data[0])
	}

	codec, err := c.readerSchema(int(binary.BigEndian.Uint32(data[1:_headerLength])))
	if err != nil {
		return nil, err
	}

	native, _, err := codec.NativeFromBinary(data[_headerLength:])
	if err != nil {
		return nil, fmt.Errorf("decoding Avro data: %w", err)
	}

	fields, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: record expected, got %T", ErrInvalidWireFormat, native)
	}

	record := avroEnvelope{}
	record.TraceID, _ = fields["trace_id"].(string)
	record.SpanID, _ = fields["span_id"].(string)
	record.TraceFlags, _ = fields["trace_flags"].(string)
	record.Payload, _ = fields["payload"].([]byte)
	return record.envelope(), nil
}
