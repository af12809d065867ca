package calfile

import (
	"strconv"
	"strings"
)

// Metadata holds the key/value pairs of a calibration header in the order
// they first appeared. Values are kept as written.
type Metadata struct {
	keys   []string
	values map[string]string
}

func (m *Metadata) set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored for key.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in header order.
func (m Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of distinct keys.
func (m Metadata) Len() int { return len(m.keys) }

// Float parses the value stored for key as a float64. The second result is
// false when the key is absent or its value is not a number.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m.values[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
