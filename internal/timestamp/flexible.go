package timestamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Flexible is a time.Time that unmarshals from any of the three accepted
// wire encodings. Request bodies use it for every date field.
type Flexible struct {
	time.Time
}

func (f *Flexible) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", ErrNotAnInstant)
	}

	if object, ok := raw.(map[string]any); ok {
		pair, err := secondsNanosFromObject(object)
		if err != nil {
			return err
		}
		normalized, err := Normalize(pair)
		if err != nil {
			return err
		}
		f.Time = normalized
		return nil
	}

	normalized, err := Normalize(raw)
	if err != nil {
		return err
	}
	f.Time = normalized
	return nil
}

func (f Flexible) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time.Format(time.RFC3339Nano))
}

func secondsNanosFromObject(object map[string]any) (SecondsNanos, error) {
	seconds, ok := numberField(object, "seconds")
	if !ok {
		return SecondsNanos{}, fmt.Errorf("object timestamp without seconds: %w", ErrNotAnInstant)
	}
	nanos, _ := numberField(object, "nanos")
	return SecondsNanos{Seconds: seconds, Nanos: nanos}, nil
}

func numberField(object map[string]any, key string) (int64, bool) {
	raw, exists := object[key]
	if !exists {
		return 0, false
	}
	number, ok := raw.(json.Number)
	if !ok {
		return 0, false
	}
	parsed, err := number.Int64()
	if err != nil {
		return 0, false
	}
	return parsed, true
}
