package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a record identity that may arrive as a JSON number or a JSON string.
// Two IDs denote the same record when their text forms match exactly, so the
// string "1" and the number 1 are equal while "01" and " 1" are not. Always
// compare with Equal or Key, never with ==.
type ID struct {
	raw     string
	numeric bool
}

func IntID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

func StringID(s string) ID {
	return ID{raw: s}
}

// ParseID turns user input into an ID: integer-looking text becomes a numeric
// identity, anything else stays a string.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}
	return StringID(s)
}

// Key is the text form used for every identity comparison and as a map key.
// Numbers are formatted in base 10, strings are used as given.
func (id ID) Key() string {
	return id.raw
}

func (id ID) Equal(other ID) bool {
	return id.Key() == other.Key()
}

func (id ID) IsZero() bool {
	return id.raw == "" && !id.numeric
}

// IsNumeric reports whether the identity was given as a number.
func (id ID) IsNumeric() bool {
	return id.numeric
}

// Int returns the numeric value when the identity's text is a base 10
// integer, whatever representation it arrived in.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(id.Key(), 10, 64)
	return n, err == nil
}

func (id ID) String() string {
	return id.raw
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = IntID(i)
		return nil
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		*id = IntID(int64(f))
		return nil
	}
	*id = ID{raw: n.String(), numeric: true}
	return nil
}
