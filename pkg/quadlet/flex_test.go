package quadlet

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringList_Unmarshal(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`["a", "b"]`), &l); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", l)
	}

	if err := json.Unmarshal([]byte(`"one  two three"`), &l); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"one", "two", "three"}) {
		t.Errorf("Expected whitespace split, got %v", l)
	}
}

func TestKeyValues_Unmarshal(t *testing.T) {
	var kv KeyValues
	if err := json.Unmarshal([]byte(`["A=1", "B=2"]`), &kv); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(kv, KeyValues{"A=1", "B=2"}) {
		t.Errorf("Expected list form preserved, got %v", kv)
	}

	// Mapping form flattens in sorted key order so output stays
	// deterministic.
	if err := json.Unmarshal([]byte(`{"b": "2", "a": 1, "c": true}`), &kv); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(kv, KeyValues{"a=1", "b=2", "c=true"}) {
		t.Errorf("Expected sorted flattened mapping, got %v", kv)
	}

	if err := json.Unmarshal([]byte(`"X=1 Y=2"`), &kv); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(kv, KeyValues{"X=1", "Y=2"}) {
		t.Errorf("Expected scalar split, got %v", kv)
	}
}

func TestKeyValues_Pairs(t *testing.T) {
	kv := KeyValues{"GOOD=val", "NOEQUALS", "ALSO=ok"}
	pairs := kv.Pairs()
	if !reflect.DeepEqual(pairs, []string{"GOOD=val", "ALSO=ok"}) {
		t.Errorf("Expected entries without '=' dropped, got %v", pairs)
	}
}

func TestScalar_Unmarshal(t *testing.T) {
	cases := map[string]Scalar{
		`"text"`: "text",
		`30`:     "30",
		`0.5`:    "0.5",
		`true`:   "true",
	}
	for in, want := range cases {
		var s Scalar
		if err := json.Unmarshal([]byte(in), &s); err != nil {
			t.Fatalf("Unmarshal %s failed: %v", in, err)
		}
		if s != want {
			t.Errorf("Unmarshal %s: expected %q, got %q", in, want, s)
		}
	}
}

func TestBool_Unmarshal(t *testing.T) {
	cases := map[string]Bool{
		`true`:    true,
		`false`:   false,
		`"1"`:     true,
		`"yes"`:   true,
		`"on"`:    true,
		`"0"`:     false,
		`"maybe"`: false,
		`1`:       true,
		`0`:       false,
	}
	for in, want := range cases {
		var b Bool
		if err := json.Unmarshal([]byte(in), &b); err != nil {
			t.Fatalf("Unmarshal %s failed: %v", in, err)
		}
		if b != want {
			t.Errorf("Unmarshal %s: expected %v, got %v", in, want, b)
		}
	}
}

func TestEnabled_Disabled(t *testing.T) {
	cases := map[Enabled]bool{
		"":      false,
		"1":     false,
		"true":  false,
		"yes":   false,
		"0":     true,
		"false": true,
		"False": true,
	}
	for in, want := range cases {
		if got := in.Disabled(); got != want {
			t.Errorf("Enabled(%q).Disabled(): expected %v, got %v", string(in), want, got)
		}
	}
}

func TestEnabled_Unmarshal(t *testing.T) {
	var e Enabled
	if err := json.Unmarshal([]byte(`false`), &e); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !e.Disabled() {
		t.Error("Expected enabled:false to disable")
	}

	if err := json.Unmarshal([]byte(`"0"`), &e); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !e.Disabled() {
		t.Error("Expected enabled:\"0\" to disable")
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "yes", "true", "on", "TRUE", " on "}
	for _, s := range truthy {
		if !ParseBool(s) {
			t.Errorf("Expected ParseBool(%q) true", s)
		}
	}
	falsy := []string{"", "0", "no", "off", "banana"}
	for _, s := range falsy {
		if ParseBool(s) {
			t.Errorf("Expected ParseBool(%q) false", s)
		}
	}
}

func TestValidRestartPolicy(t *testing.T) {
	for _, v := range []string{"always", "on-failure", "no", ""} {
		if !ValidRestartPolicy(v) {
			t.Errorf("Expected %q accepted", v)
		}
	}
	for _, v := range []string{"unless-stopped", "Always", "never"} {
		if ValidRestartPolicy(v) {
			t.Errorf("Expected %q rejected", v)
		}
	}
}
