package cbor

import (
	"errors"
	"testing"
)

func TestDiagScalars(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00", "0"},
		{"17", "23"},
		{"1818", "24"},
		{"1a000f4240", "1000000"},
		{"20", "-1"},
		{"3903e7", "-1000"},
		{"3bffffffffffffffff", "-18446744073709551616"},
		{"f4", "false"},
		{"f5", "true"},
		{"f6", "null"},
		{"f7", "undefined"},
		{"f0", "simple(16)"},
		{"f8ff", "simple(255)"},
		{"f93c00", "1.0"},
		{"f97c00", "Infinity"},
		{"f9fc00", "-Infinity"},
		{"f97e00", "NaN"},
		{"fb3ff199999999999a", "1.1"},
		{"6449455446", `"IETF"`},
		{"4401020304", "h'01020304'"},
		{"40", "h''"},
	}
	for _, c := range cases {
		got, rest, err := DiagBytes(mustHex(t, c.in))
		if err != nil {
			t.Fatalf("DiagBytes(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("DiagBytes(%s) = %q, want %q", c.in, got, c.want)
		}
		if len(rest) != 0 {
			t.Fatalf("DiagBytes(%s) left %d bytes", c.in, len(rest))
		}
	}
}

func TestDiagContainers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"80", "[]"},
		{"83010203", "[1, 2, 3]"},
		{"8301820203820405", "[1, [2, 3], [4, 5]]"},
		{"a201020304", "{1: 2, 3: 4}"},
		{"a26161016162820203", `{"a": 1, "b": [2, 3]}`},
		{"9f0102ff", "[_ 1, 2]"},
		{"9fff", "[_]"},
		{"bf616101616202ff", `{_ "a": 1, "b": 2}`},
		{"c11a514b67b0", "1(1363896240)"},
		{"d9d9f783010203", "55799([1, 2, 3])"},
		{"5f42010243030405ff", "(_ h'0102', h'030405')"},
		{"7f657374726561646d696e67ff", `(_ "strea", "ming")`},
	}
	for _, c := range cases {
		got, _, err := DiagBytes(mustHex(t, c.in))
		if err != nil {
			t.Fatalf("DiagBytes(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("DiagBytes(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDiagSequence(t *testing.T) {
	out, err := Diag(mustHex(t, "0102820304"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "1\n2\n[3, 4]" {
		t.Fatalf("Diag sequence = %q", out)
	}
}

func TestDiagErrors(t *testing.T) {
	if _, _, err := DiagBytes(mustHex(t, "1a0001")); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("truncated input: %v", err)
	}
	if _, _, err := DiagBytes(mustHex(t, "ff")); !errors.Is(err, ErrBreak) {
		t.Fatalf("standalone break: %v", err)
	}
}

func TestDiagItemRestoresOnError(t *testing.T) {
	d := NewDecoder(mustHex(t, "82011a0001")) // array whose 2nd item is cut
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := d.DiagItem(bb); err == nil {
		t.Fatal("expected error for truncated array")
	}
	if d.Position() != 0 {
		t.Fatalf("failed DiagItem left cursor at %d", d.Position())
	}
}
