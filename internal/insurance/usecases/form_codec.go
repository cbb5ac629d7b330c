package usecases

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Cached form trees are msgpack documents keyed by the json field names,
// so both cache backends hold the same compact bytes.

func encodeCached(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("msgpack marshaling: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeCached(data []byte, target any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("msgpack unmarshaling: %w", err)
	}
	return nil
}
