package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Millis is a timestamp in epoch milliseconds that may still be pending,
// i.e. not yet assigned by the store. A pending value encodes as null so it
// cannot be confused with the epoch itself.
type Millis struct {
	value int64
	set   bool
}

// MillisOf converts t. The zero time means the store has not assigned it yet.
func MillisOf(t time.Time) Millis {
	if t.IsZero() {
		return Millis{}
	}
	return Millis{value: t.UnixMilli(), set: true}
}

// Pending reports whether the timestamp has not been assigned.
func (m Millis) Pending() bool { return !m.set }

// Int64 returns the milliseconds, or 0 while pending.
func (m Millis) Int64() int64 { return m.value }

func (m Millis) MarshalJSON() ([]byte, error) {
	if !m.set {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = Millis{}
		return nil
	}
	if err := json.Unmarshal(data, &m.value); err != nil {
		return err
	}
	m.set = true
	return nil
}
