package codec

import (
	"strings"
	"testing"
)

type stopRecord struct {
	ID   int    `json:"id" msgpack:"id" cbor:"id"`
	Name string `json:"name" msgpack:"name" cbor:"name"`
}

func TestJSONRoundTrip(t *testing.T) {
	c := JSON[stopRecord]{}
	b, err := c.Encode(stopRecord{ID: 9117, Name: "Odenplan"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.ID != 9117 || v.Name != "Odenplan" {
		t.Fatalf("v = %+v", v)
	}

	if _, err := c.Decode([]byte("{")); err == nil {
		t.Fatal("truncated JSON accepted")
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	c := Msgpack[[]stopRecord]{}
	in := []stopRecord{{ID: 9117, Name: "Odenplan"}, {ID: 9001, Name: "T-Centralen"}}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(v) != 2 || v[1].Name != "T-Centralen" {
		t.Fatalf("v = %+v", v)
	}
}

func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR[stopRecord](true)
	in := stopRecord{ID: 9117, Name: "Odenplan"}

	b1, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b2, _ := c.Encode(in)
	if string(b1) != string(b2) {
		t.Fatal("deterministic encoding differs between runs")
	}

	v, err := c.Decode(b1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != in {
		t.Fatalf("v = %+v", v)
	}
}

func TestIdentityCodecs(t *testing.T) {
	raw := []byte{0x01, 0x02}
	if b, err := (Bytes{}).Encode(raw); err != nil || string(b) != string(raw) {
		t.Fatalf("Bytes.Encode: %v %v", b, err)
	}

	s, err := (String{}).Decode([]byte("hej"))
	if err != nil || s != "hej" {
		t.Fatalf("String.Decode: %q %v", s, err)
	}
}

func TestLimitEnforcesMaxDecode(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4}

	if _, err := c.Decode([]byte("1234")); err != nil {
		t.Fatalf("at limit: %v", err)
	}
	_, err := c.Decode([]byte("12345"))
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("over limit: %v", err)
	}

	// disabled when MaxDecode <= 0
	c.MaxDecode = 0
	if _, err := c.Decode([]byte(strings.Repeat("x", 1<<16))); err != nil {
		t.Fatalf("disabled limit: %v", err)
	}

	// Encode is never limited
	if _, err := c.Encode(strings.Repeat("x", 1<<16)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}
