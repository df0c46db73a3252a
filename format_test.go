package calcexpr_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"github.com/kephrin/calcexpr"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  string
		dec string
		hex string
		bin string
	}{
		{"0", "0", "0x0", "0b0"},
		{"-0", "0", "0x0", "0b0"},
		{"1", "1", "0x1", "0b1"},
		{"255", "255", "0xff", "0b11111111"},
		{"4.000", "4", "0x4", "0b100"},
		{"1E+2", "100", "0x64", "0b1100100"},
		{"3.5", "3.5", "", ""},
		{"-1", "-1", "", ""},
		{"18446744073709551615", "18446744073709551615", "0xffffffffffffffff", "0b" + strings.Repeat("1", 64)},
		{"18446744073709551616", "18446744073709551616", "", ""},
		{"0.500", "0.5", "", ""},
	}
	for _, c := range cases {
		d, _, err := apd.NewFromString(c.in)
		if err != nil {
			t.Fatalf("bad test value %q: %v", c.in, err)
		}
		r := calcexpr.Format(d)
		if r.Decimal != c.dec {
			t.Errorf("Format(%s): decimal %q, want %q", c.in, r.Decimal, c.dec)
		}
		if c.hex == "" {
			if r.Hex != nil {
				t.Errorf("Format(%s): hex should be absent, got %q", c.in, *r.Hex)
			}
		} else if r.Hex == nil || *r.Hex != c.hex {
			t.Errorf("Format(%s): hex %v, want %q", c.in, r.Hex, c.hex)
		}
		if c.bin == "" {
			if r.Binary != nil {
				t.Errorf("Format(%s): binary should be absent, got %q", c.in, *r.Binary)
			}
		} else if r.Binary == nil || *r.Binary != c.bin {
			t.Errorf("Format(%s): binary %v, want %q", c.in, r.Binary, c.bin)
		}
	}
}

// TestResultJSON checks the serialized shape consumed by callers: decimal
// always a string, hex and binary null when they do not apply.
func TestResultJSON(t *testing.T) {
	r, err := calcexpr.EvalString("pi")
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["decimal"].(string); !ok {
		t.Errorf("decimal is not a string: %v", m["decimal"])
	}
	if m["hex"] != nil || m["binary"] != nil {
		t.Errorf("hex and binary must be null for a non-integer: %v", m)
	}

	r, err = calcexpr.EvalString("255")
	if err != nil {
		t.Fatal(err)
	}
	b, err = json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["hex"] != "0xff" || m["binary"] != "0b11111111" {
		t.Errorf("wrong hex/binary for 255: %v", m)
	}
}
