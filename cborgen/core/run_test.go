package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureSource = `package fixtures

import "time"

type Person struct {
	Name    string            ` + "`cbor:\"0\"`" + `
	Nick    string            ` + "`cbor:\"1,omitempty\"`" + `
	Age     uint32            ` + "`cbor:\"2\"`" + `
	Tags    []string          ` + "`cbor:\"3,omitempty\"`" + `
	Attrs   map[string]string ` + "`cbor:\"4,omitempty\"`" + `
	Joined  time.Time         ` + "`cbor:\"5,omitempty\"`" + `
	Manager *Person           ` + "`cbor:\"6,omitempty\"`" + `
	secret  string
	Skipped string ` + "`cbor:\"-\"`" + `
}

//cborgen:union Circle Rect
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64 ` + "`cbor:\"0\"`" + `
}

type Rect struct {
	W float64 ` + "`cbor:\"0\"`" + `
	H float64 ` + "`cbor:\"1\"`" + `
}
`

func generateFixture(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "fixtures.go")
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "fixtures_cbor.go")
	if err := Run(in, out, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGenerateStructMethods(t *testing.T) {
	out := generateFixture(t, fixtureSource)

	for _, want := range []string{
		"func (x *Person) EncodeCBOR(e *cbor.Encoder) error",
		"func (x *Person) DecodeCBOR(d *cbor.Decoder) error",
		"cbor.MissingFieldError{Index: 0, Field: \"Name\"}",
		"cbor.MissingFieldError{Index: 2, Field: \"Age\"}",
		"if err := d.Skip(); err != nil",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated output missing %q", want)
		}
	}

	// Unexported and ignored fields must not leak into the output.
	for _, reject := range []string{"secret", "Skipped"} {
		if strings.Contains(out, reject) {
			t.Errorf("generated output mentions excluded field %q", reject)
		}
	}

	// Optional fields are never required.
	if strings.Contains(out, "MissingFieldError{Index: 1") {
		t.Error("omitempty field generated a required check")
	}
}

func TestGenerateUnionDispatch(t *testing.T) {
	out := generateFixture(t, fixtureSource)

	for _, want := range []string{
		"func EncodeShape(e *cbor.Encoder, v Shape) error",
		"func DecodeShape(d *cbor.Decoder) (Shape, error)",
		"cbor.EncodeUnion(e, 0, func(e *cbor.Encoder) error",
		"cbor.UnknownVariantError{Index: idx}",
		"case *Rect:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated output missing %q", want)
		}
	}
}

func TestGenerateDeclarationOrderIndices(t *testing.T) {
	src := `package fixtures

type Pair struct {
	First  uint64
	Second uint64
	Third  uint64 ` + "`cbor:\"7\"`" + `
	Fourth uint64
}
`
	out := generateFixture(t, src)
	for _, want := range []string{"case 0:", "case 1:", "case 7:", "case 8:"} {
		if !strings.Contains(out, want) {
			t.Errorf("generated output missing %q", want)
		}
	}
}

func TestGenerateDuplicateIndexRejected(t *testing.T) {
	src := `package fixtures

type Bad struct {
	A uint64 ` + "`cbor:\"1\"`" + `
	B uint64 ` + "`cbor:\"1\"`" + `
}
`
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.go")
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Run(in, filepath.Join(dir, "bad_cbor.go"), Options{})
	if err == nil || !strings.Contains(err.Error(), "share index") {
		t.Fatalf("expected duplicate index error, got %v", err)
	}
}

func TestGenerateAllowlist(t *testing.T) {
	out := func() string {
		dir := t.TempDir()
		in := filepath.Join(dir, "fixtures.go")
		if err := os.WriteFile(in, []byte(fixtureSource), 0o644); err != nil {
			t.Fatal(err)
		}
		outPath := filepath.Join(dir, "fixtures_cbor.go")
		if err := Run(in, outPath, Options{Structs: []string{"Circle"}}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}()

	if !strings.Contains(out, "func (x *Circle) EncodeCBOR") {
		t.Error("allowlisted type not generated")
	}
	if strings.Contains(out, "func (x *Person) EncodeCBOR") {
		t.Error("non-allowlisted type generated")
	}
}
