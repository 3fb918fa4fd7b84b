package quadlet

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The manifest document carries native lists, mappings, numbers and
// booleans where the flat build variables carry one string. The types
// below absorb both shapes at decode time so the field mappers never
// branch on the configuration source.

// StringList holds an ordered list of values. It decodes from a JSON
// array of strings or from a single string that is split on
// whitespace, which is also how the flat reader fills it.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = strings.Fields(s)
	return nil
}

// FieldsList builds a StringList from a space-separated string,
// collapsing runs of whitespace.
func FieldsList(s string) StringList {
	return StringList(strings.Fields(s))
}

// KeyValues holds an ordered list of key=value entries. It decodes
// from a JSON array of "k=v" strings, from an object (flattened to
// "k=v" entries in sorted key order so output stays deterministic), or
// from a single scalar split on whitespace.
type KeyValues []string

func (kv *KeyValues) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*kv = list
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err == nil {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]string, 0, len(keys))
		for _, k := range keys {
			var v Scalar
			if err := json.Unmarshal(m[k], &v); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
			entries = append(entries, k+"="+string(v))
		}
		*kv = entries
		return nil
	}

	var s Scalar
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected list, mapping or string: %w", err)
	}
	*kv = strings.Fields(string(s))
	return nil
}

// Pairs returns the entries that contain a "=" separator. Entries
// without one are dropped silently.
func (kv KeyValues) Pairs() []string {
	var out []string
	for _, e := range kv {
		if strings.Contains(e, "=") {
			out = append(out, e)
		}
	}
	return out
}

// Scalar is a string-rendered scalar. It decodes from a JSON string,
// number or boolean and keeps the decimal/literal text form.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Scalar(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("expected string, number or boolean: %w", err)
	}
	*s = Scalar(strconv.FormatBool(b))
	return nil
}

// Bool is a boolean-like field. It decodes from a JSON boolean, from a
// string coerced with ParseBool, or from a number (non-zero is true).
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Bool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Bool(ParseBool(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected boolean, string or number: %w", err)
	}
	*b = Bool(n != 0)
	return nil
}

// Enabled records whether an entity's unit file goes to the active
// quadlet directory. The zero value (field absent or empty) means
// enabled; only an explicit "0" or false disables.
type Enabled string

func (e *Enabled) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*e = Enabled(strconv.FormatBool(v))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Enabled(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected boolean, string or number: %w", err)
	}
	*e = Enabled(n.String())
	return nil
}

func (e Enabled) Disabled() bool {
	v := strings.ToLower(strings.TrimSpace(string(e)))
	return v == "0" || v == "false"
}

// ParseBool coerces a systemd-style boolean string. Accepted truthy
// values are 1, yes, true and on; everything else is false.
func ParseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "yes" || s == "true" || s == "on"
}
