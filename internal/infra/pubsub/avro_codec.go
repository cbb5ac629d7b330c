package pubsub

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// envelopeSchema is the Avro shape of every Kafka message value. The
// payload stays JSON so any Message type fits one schema.
const envelopeSchema = `{
	"type": "record",
	"name": "Envelope",
	"namespace": "insurance.pubsub",
	"fields": [
		{"name": "trace_id", "type": "string", "default": ""},
		{"name": "span_id", "type": "string", "default": ""},
		{"name": "trace_flags", "type": "string", "default": ""},
		{"name": "payload", "type": "bytes"}
	]
}`

var envelopeAvroSchema = avro.MustParse(envelopeSchema)

type avroEnvelope struct {
	TraceID    string `avro:"trace_id"`
	SpanID     string `avro:"span_id"`
	TraceFlags string `avro:"trace_flags"`
	Payload    []byte `avro:"payload"`
}

func toAvroEnvelope(e Envelope) avroEnvelope {
	return avroEnvelope{
		TraceID:    e.Trace.TraceID,
		SpanID:     e.Trace.SpanID,
		TraceFlags: e.Trace.TraceFlags,
		Payload:    e.Payload,
	}
}

func (a avroEnvelope) envelope() *Envelope {
	return &Envelope{
		Trace: TraceHeaders{
			TraceID:    a.TraceID,
			SpanID:     a.SpanID,
			TraceFlags: a.TraceFlags,
		},
		Payload: a.Payload,
	}
}

var _ Codec = (*AvroCodec)(nil)

// AvroCodec writes envelopes as plain Avro binary with the schema known
// to both ends. Used when no schema registry is configured.
type AvroCodec struct{}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	envelope, err := envelopeOf(value)
	if err != nil {
		return nil, err
	}

	data, err := avro.Marshal(envelopeAvroSchema, toAvroEnvelope(envelope))
	if err != nil {
		return nil, fmt.Errorf("encoding to Avro: %w", err)
	}
	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	var record avroEnvelope
	if err := avro.Unmarshal(envelopeAvroSchema, data, &record); err != nil {
		return nil, fmt.Errorf("decoding Avro data: %w", err)
	}
	return record.envelope(), nil
}
