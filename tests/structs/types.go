// Package structs holds fixture types exercised by the integration tests.
// The *_cbor.go files in this package are produced by cborgen and committed.
package structs

import "time"

//go:generate go run github.com/jredrado/minicbor/cborgen -i types.go

type Person struct {
	Name string `cbor:"0"`
	Age  uint32 `cbor:"1,omitempty"`
	Data []byte `cbor:"2"`
}

type Address struct {
	Street string `cbor:"0"`
	City   string `cbor:"1"`
}

type Profile struct {
	ID      uint64            `cbor:"0"`
	Tags    []string          `cbor:"1,omitempty"`
	Attrs   map[string]string `cbor:"2,omitempty"`
	Home    Address           `cbor:"3"`
	Work    *Address          `cbor:"4,omitempty"`
	Scores  []float64         `cbor:"5,omitempty"`
	Joined  time.Time         `cbor:"6"`
	private string            // not encoded
	Skipped string            `cbor:"-"`
}

// Shape is a closed set of geometric variants. On the wire a Shape is a
// two element array of [variant index, payload].
//
//cborgen:union Circle Rect
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64 `cbor:"0"`
}

func (*Circle) isShape() {}

type Rect struct {
	W float64 `cbor:"0"`
	H float64 `cbor:"1"`
}

func (*Rect) isShape() {}

type Drawing struct {
	Title string `cbor:"0"`
	Main  Shape  `cbor:"1"`
}
