package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	cbor "github.com/jredrado/minicbor/codec"
)

// CLI defines the cbor2diag command-line interface. It reads a CBOR
// item or sequence from a file or stdin and prints RFC 8949 diagnostic
// notation, one line per top-level item.
type CLI struct {
	Input    string `arg:"" optional:"" help:"Input file (defaults to stdin)"`
	Hex      bool   `short:"x" help:"Treat input as hex text instead of raw bytes"`
	Validate bool   `help:"Validate well-formedness only, print nothing on success"`
	MaxDepth int    `default:"0" help:"Override nesting depth limit (0 uses the default)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cbor2diag"),
		kong.Description("Render CBOR as RFC 8949 diagnostic notation."),
	)
	ctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	data, err := readInput(cli.Input)
	if err != nil {
		return err
	}
	if cli.Hex {
		data, err = decodeHexText(data)
		if err != nil {
			return err
		}
	}

	if cli.Validate {
		return cbor.ValidateDocument(data)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	d := cbor.NewDecoder(data)
	if cli.MaxDepth > 0 {
		d.SetMaxDepth(cli.MaxDepth)
	}
	bb := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(bb)
	for d.Remaining() > 0 {
		bb.Reset()
		if err := d.DiagItem(bb); err != nil {
			return fmt.Errorf("at offset %d: %w", d.Position(), err)
		}
		if _, err := w.Write(bb.Bytes()); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeHexText decodes hex input, tolerating whitespace and 0x
// prefixes so output of common dump tools can be pasted directly.
func decodeHexText(in []byte) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return -1
		}
		return r
	}, string(in))
	s = strings.ReplaceAll(s, "0x", "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bad hex input: %w", err)
	}
	return b, nil
}
