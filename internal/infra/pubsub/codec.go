package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var ErrNotAnEnvelope = errors.New("value is not an envelope")

// Codec is the goka codec contract. Kafka codecs carry Envelope values.
type Codec interface {
	Encode(value any) (data []byte, err error)
	Decode(data []byte) (value any, err error)
}

// Envelope is the wire format of every message: the JSON payload plus the
// trace context of the publisher.
type Envelope struct {
	Trace   TraceHeaders    `json:"trace"`
	Payload json.RawMessage `json:"payload"`
}

func NewEnvelope(ctx context.Context, message Message) (Envelope, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshaling payload: %w", err)
	}

	return Envelope{Trace: ExtractTraceFromContext(ctx), Payload: payload}, nil
}

func envelopeOf(value any) (Envelope, error) {
	switch v := value.(type) {
	case Envelope:
		return v, nil
	case *Envelope:
		if v != nil {
			return *v, nil
		}
	}
	return Envelope{}, fmt.Errorf("%w: %T", ErrNotAnEnvelope, value)
}

// Open decodes the payload into a new instance of the prototype's type.
func (e Envelope) Open(prototype Prototype) (any, error) {
	instance := newInstance(prototype)
	if err := json.Unmarshal(e.Payload, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling payload: %w", err)
	}

	return instance, nil
}

func newInstance(prototype Prototype) any {
	pt := reflect.TypeOf(prototype)
	if pt == nil {
		var value any
		return &value
	}
	if pt.Kind() == reflect.Pointer {
		pt = pt.Elem()
	}
	return reflect.New(pt).Interface()
}
