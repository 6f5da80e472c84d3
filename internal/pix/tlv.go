package pix

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxFieldLen is the largest value a single field can carry: the length
// prefix is always exactly two decimal digits.
const MaxFieldLen = 99

var ErrMalformedField = errors.New("malformed tlv field")

// Field is one decoded id/length/value record.
type Field struct {
	ID    string
	Value string
}

// FormatField renders id + 2-digit byte length + value. Values longer than
// MaxFieldLen bytes are cut to fit on a rune boundary.
func FormatField(id, value string) string {
	value = truncate(value, MaxFieldLen)
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// ParseFields splits a concatenation of TLV records. Nested templates (26, 62)
// are returned as raw values; call ParseFields again on them.
func ParseFields(s string) ([]Field, error) {
	var out []Field
	for i := 0; i < len(s); {
		if len(s)-i < 4 {
			return nil, fmt.Errorf("%w: truncated header at offset %d", ErrMalformedField, i)
		}
		id := s[i : i+2]
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad length for id %s", ErrMalformedField, id)
		}
		start := i + 4
		if start+n > len(s) {
			return nil, fmt.Errorf("%w: id %s overruns payload", ErrMalformedField, id)
		}
		out = append(out, Field{ID: id, Value: s[start : start+n]})
		i = start + n
	}
	return out, nil
}

func lookup(fields []Field, id string) (string, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f.Value, true
		}
	}
	return "", false
}
