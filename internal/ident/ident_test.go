package ident

import (
	"encoding/json"
	"testing"

	"github.com/nanokusa/go-shop-catalog/internal/status"
)

type product struct{}
type cartTag struct{}

func TestParse(t *testing.T) {
	id, err := Parse[product]("42")
	if err != nil {
		t.Fatal(err)
	}
	if id.Int64() != 42 {
		t.Errorf("Int64 = %d, want 42", id.Int64())
	}
	if id.String() != "42" {
		t.Errorf("String = %q, want %q", id.String(), "42")
	}
}

func TestParseRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "abc", "1.5", "0x10"} {
		_, err := Parse[product](in)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
			continue
		}
		if status.CodeOf(err) != status.CodeInvalidArgument {
			t.Errorf("Parse(%q) code = %d, want CodeInvalidArgument", in, status.CodeOf(err))
		}
	}
}

func TestIsZero(t *testing.T) {
	if !ID[product](0).IsZero() {
		t.Error("zero id must report IsZero")
	}
	if ID[product](1).IsZero() {
		t.Error("non-zero id must not report IsZero")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := ID[cartTag](9001)
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "9001" {
		t.Errorf("encoded as %s, want bare integer", b)
	}
	var out ID[cartTag]
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %d, want %d", out, in)
	}
}
