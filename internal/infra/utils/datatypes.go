package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSTimeLayout matches the ISO strings produced by browsers.
const JSTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(JSTimeLayout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("parsing time: %w", err)
	}
	t.Time = parsed
	return nil
}

func (t Time) Value() (driver.Value, error) {
	return t.UTC(), nil
}

func (t *Time) Scan(src any) error {
	switch val := src.(type) {
	case time.Time:
		t.Time = val
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return err
		}
		t.Time = parsed
	case nil:
		t.Time = time.Time{}
	default:
		return fmt.Errorf("invalid type for time: %T", src)
	}
	return nil
}
