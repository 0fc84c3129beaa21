package core

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	tmplfs "github.com/jredrado/minicbor/cborgen/templates"
)

// runtimePath is the import path of the codec package the generated
// code depends on.
const runtimePath = "github.com/jredrado/minicbor/codec"

const runtimeAlias = "cbor"

var templateFuncs = template.FuncMap{
	"rt": runtimeName,
}

func runtimeName(name string) string {
	return runtimeAlias + "." + name
}

// Options configures how generation runs.
type Options struct {
	Verbose bool
	// Structs, if non-empty, restricts generation to the named types.
	// Names must match Go type names exactly (no package qualification).
	Structs []string
}

// Run generates CBOR code for a single Go source file. It emits
// per-type EncodeCBOR/DecodeCBOR implementations into outputPath, plus
// EncodeX/DecodeX dispatch functions for union interfaces.
func Run(inputPath, outputPath string, opts Options) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, inputPath, nil, parser.ParseComments)
	if err != nil {
		return err
	}
	return generate(file, outputPath, file.Name.Name, opts)
}

type fieldSpec struct {
	GoName      string
	Index       uint32
	OmitEmpty   bool
	OmitCond    string
	EncodeStmts string
	DecodeCase  string
}

// Required reports whether the decoder must see this field.
func (f fieldSpec) Required() bool { return !f.OmitEmpty }

type structSpec struct {
	Name   string
	Fields []fieldSpec
}

type variantSpec struct {
	Index    uint32
	TypeName string
}

type unionSpec struct {
	Name     string
	Variants []variantSpec
}

// unionDirective is the comment marker declaring a union interface and
// its variant list, e.g.
//
//	//cborgen:union Circle Rect
//	type Shape interface{ ... }
//
// Variant indices follow the list order.
const unionDirective = "cborgen:union"

func generate(file *ast.File, outputPath, pkg string, opts Options) error {
	var allowed map[string]struct{}
	if len(opts.Structs) > 0 {
		allowed = make(map[string]struct{}, len(opts.Structs))
		for _, name := range opts.Structs {
			if name = strings.TrimSpace(name); name != "" {
				allowed[name] = struct{}{}
			}
		}
	}

	// Collect unions first so struct fields of a union interface type
	// can dispatch through the generated EncodeX/DecodeX functions.
	unions, err := collectUnions(file, allowed)
	if err != nil {
		return err
	}
	unionNames := make(map[string]struct{}, len(unions))
	for _, u := range unions {
		unionNames[u.Name] = struct{}{}
	}

	structs, err := collectStructs(file, allowed, unionNames)
	if err != nil {
		return err
	}
	if len(structs) == 0 && len(unions) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	data := struct {
		Package     string
		RuntimePath string
		Structs     []structSpec
		Unions      []unionSpec
	}{
		Package:     pkg,
		RuntimePath: runtimePath,
		Structs:     structs,
		Unions:      unions,
	}

	var buf bytes.Buffer
	if err := marshalTemplate.ExecuteTemplate(&buf, "marshal.go.tpl", data); err != nil {
		return err
	}

	src, err := imports.Process(outputPath, buf.Bytes(), nil)
	if err != nil {
		// Fall back to go/format if goimports fails.
		if formatted, ferr := format.Source(buf.Bytes()); ferr == nil {
			src = formatted
		} else {
			src = buf.Bytes()
		}
	}

	_, err = out.Write(src)
	return err
}

// collectUnions finds interface types carrying the union directive.
func collectUnions(file *ast.File, allowed map[string]struct{}) ([]unionSpec, error) {
	var unions []unionSpec
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := ts.Type.(*ast.InterfaceType); !ok {
				continue
			}
			variants, found := unionVariants(gd.Doc, ts.Doc)
			if !found {
				continue
			}
			if len(allowed) > 0 {
				if _, ok := allowed[ts.Name.Name]; !ok {
					continue
				}
			}
			if len(variants) == 0 {
				return nil, fmt.Errorf("union %s: directive lists no variants", ts.Name.Name)
			}
			u := unionSpec{Name: ts.Name.Name}
			for i, v := range variants {
				u.Variants = append(u.Variants, variantSpec{Index: uint32(i), TypeName: v})
			}
			unions = append(unions, u)
		}
	}
	return unions, nil
}

// unionVariants scans doc comment groups for the union directive and
// returns the declared variant type names in order.
func unionVariants(groups ...*ast.CommentGroup) ([]string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			text := strings.TrimPrefix(c.Text, "//")
			text = strings.TrimSpace(text)
			if !strings.HasPrefix(text, unionDirective) {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(text, unionDirective))
			return strings.Fields(rest), true
		}
	}
	return nil, false
}

// collectStructs builds a structSpec per eligible struct type. Field
// indices follow declaration order unless a cbor:"N" tag overrides
// them; overrides restart the running counter past the explicit index.
func collectStructs(file *ast.File, allowed map[string]struct{}, unions map[string]struct{}) ([]structSpec, error) {
	var structs []structSpec
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if len(allowed) > 0 {
				if _, ok := allowed[ts.Name.Name]; !ok {
					continue
				}
			}
			ss := structSpec{Name: ts.Name.Name}
			next := uint32(0)
			used := map[uint32]string{}
			for _, field := range st.Fields.List {
				// Embedded fields are not supported.
				if len(field.Names) == 0 {
					continue
				}
				name := field.Names[0].Name
				if !ast.IsExported(name) {
					continue
				}
				idx, omit, ignore, explicit, err := resolveTag(field.Tag)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", ss.Name, name, err)
				}
				if ignore {
					continue
				}
				if !explicit {
					idx = next
				}
				if prev, dup := used[idx]; dup {
					return nil, fmt.Errorf("%s: fields %s and %s share index %d",
						ss.Name, prev, name, idx)
				}
				used[idx] = name
				if idx >= next {
					next = idx + 1
				}

				fs := fieldSpec{GoName: name, Index: idx, OmitEmpty: omit}
				if fs.OmitEmpty {
					cond, ok := omitEmptyCondExpr(name, field.Type)
					if !ok {
						return nil, fmt.Errorf("%s.%s: type does not support omitempty", ss.Name, name)
					}
					fs.OmitCond = cond
				}
				enc, ok := encodeStmtsForField(name, field.Type, unions)
				if !ok {
					return nil, fmt.Errorf("%s.%s: unsupported field type", ss.Name, name)
				}
				fs.EncodeStmts = enc
				dec, ok := decodeCaseForField(name, field.Type, unions)
				if !ok {
					return nil, fmt.Errorf("%s.%s: unsupported field type", ss.Name, name)
				}
				fs.DecodeCase = dec
				ss.Fields = append(ss.Fields, fs)
			}
			if len(ss.Fields) > 0 {
				structs = append(structs, ss)
			}
		}
	}
	return structs, nil
}

// resolveTag parses the cbor struct tag: `cbor:"3"`, `cbor:"3,omitempty"`,
// `cbor:",omitempty"` (declaration-order index), or `cbor:"-"`.
func resolveTag(tag *ast.BasicLit) (idx uint32, omit, ignore, explicit bool, err error) {
	if tag == nil {
		return 0, false, false, false, nil
	}
	raw := tag.Value
	if len(raw) >= 2 && raw[0] == '`' && raw[len(raw)-1] == '`' {
		raw = raw[1 : len(raw)-1]
	}
	v, ok := reflect.StructTag(raw).Lookup("cbor")
	if !ok || v == "" {
		return 0, false, false, false, nil
	}
	if v == "-" {
		return 0, false, true, false, nil
	}
	parts := strings.Split(v, ",")
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omit = true
		}
	}
	if parts[0] == "" {
		return 0, omit, false, false, nil
	}
	n, perr := strconv.ParseUint(parts[0], 10, 32)
	if perr != nil {
		return 0, false, false, false, fmt.Errorf("bad cbor tag %q: %w", v, perr)
	}
	return uint32(n), omit, false, true, nil
}

type omitEmptyCondTemplateData struct {
	Receiver string
	Field    string
	Kind     string
}

var omitEmptyCondTemplate = template.Must(template.New("omit_empty_cond").Funcs(templateFuncs).ParseFS(tmplfs.FS, "zero_check.go.tpl"))

type decodeCaseTemplateData struct {
	Field    string
	TypeName string
	ReadCall string
	Assign   string
	KeyType  string
	KeyBody  string
	ElemType string
	ElemBody string
}

var decodeCaseTemplate = template.Must(template.New("decode_case").Funcs(templateFuncs).ParseFS(tmplfs.FS, "decode_case.go.tpl"))

var marshalTemplate = template.Must(template.New("marshal.go.tpl").Funcs(templateFuncs).ParseFS(tmplfs.FS, "marshal.go.tpl"))

// omitEmptyCondExpr builds a non-zero check for a field of the given
// type, written in terms of receiver 'x'.
func omitEmptyCondExpr(goName string, typ ast.Expr) (string, bool) {
	data := omitEmptyCondTemplateData{Receiver: "x", Field: goName}

	switch t := typ.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			data.Kind = "string"
		case "bool":
			data.Kind = "bool"
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64",
			"float32", "float64", "byte", "rune":
			data.Kind = "numeric"
		default:
			return "", false
		}
	case *ast.SelectorExpr:
		switch t.Sel.Name {
		case "Time":
			data.Kind = "time"
		case "Duration":
			data.Kind = "numeric"
		default:
			return "", false
		}
	case *ast.StarExpr, *ast.InterfaceType:
		data.Kind = "ptrOrInterface"
	case *ast.ArrayType:
		if t.Len != nil {
			return "", false
		}
		data.Kind = "slice"
	case *ast.MapType:
		data.Kind = "map"
	default:
		return "", false
	}

	var buf bytes.Buffer
	if err := omitEmptyCondTemplate.ExecuteTemplate(&buf, "omitEmptyCond", data); err != nil {
		return "", false
	}
	expr := strings.TrimSpace(buf.String())
	return expr, expr != ""
}

// scalarEncodeCall returns the Encoder method call for a scalar value
// expression, e.g. "e.Text(x.Name)".
func scalarEncodeCall(expr, typeName string) (string, bool) {
	switch typeName {
	case "string":
		return "e.Text(" + expr + ")", true
	case "bool":
		return "e.Bool(" + expr + ")", true
	case "int", "int8", "int16", "int32", "int64", "rune":
		return "e.Int(int64(" + expr + "))", true
	case "uint", "uint8", "uint16", "uint32", "uint64", "byte":
		return "e.Uint(uint64(" + expr + "))", true
	case "float32":
		return "e.F32(" + expr + ")", true
	case "float64":
		return "e.F64(" + expr + ")", true
	}
	return "", false
}

// scalarDecode returns the Decoder read call and the assignment
// expression (in terms of the read result 'v') for a scalar type.
func scalarDecode(typeName string) (readCall, assign string, ok bool) {
	switch typeName {
	case "string":
		return "d.Text()", "v", true
	case "bool":
		return "d.Bool()", "v", true
	case "int":
		return "d.Int()", "int(v)", true
	case "int8":
		return "d.Int8()", "v", true
	case "int16":
		return "d.Int16()", "v", true
	case "int32":
		return "d.Int32()", "v", true
	case "rune":
		return "d.Int32()", "rune(v)", true
	case "int64":
		return "d.Int()", "v", true
	case "uint":
		return "d.Uint()", "uint(v)", true
	case "uint8", "byte":
		return "d.Uint8()", "v", true
	case "uint16":
		return "d.Uint16()", "v", true
	case "uint32":
		return "d.Uint32()", "v", true
	case "uint64":
		return "d.Uint()", "v", true
	case "float32":
		return "d.F32()", "v", true
	case "float64":
		return "d.Float()", "v", true
	}
	return "", "", false
}

// errWrap wraps a fallible call expression into an error-checked
// statement block.
func errWrap(call string) string {
	return "if err := " + call + "; err != nil {\nreturn err\n}"
}

// encodeStmtsForField builds the statements that write a field value,
// in terms of receiver 'x' and encoder 'e'.
func encodeStmtsForField(goName string, typ ast.Expr, unions map[string]struct{}) (string, bool) {
	field := "x." + goName

	switch t := typ.(type) {
	case *ast.Ident:
		if call, ok := scalarEncodeCall(field, t.Name); ok {
			return errWrap(call), true
		}
		if _, ok := unions[t.Name]; ok {
			return errWrap("Encode" + t.Name + "(e, " + field + ")"), true
		}
		if ast.IsExported(t.Name) {
			// Nested struct with a generated or hand-written EncodeCBOR.
			return errWrap(field + ".EncodeCBOR(e)"), true
		}
		return "", false

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "time" {
			switch t.Sel.Name {
			case "Time":
				return errWrap("e.Time(" + field + ")"), true
			case "Duration":
				return errWrap("e.Int(int64(" + field + "))"), true
			}
		}
		return "", false

	case *ast.ArrayType:
		if t.Len != nil {
			return "", false
		}
		if ident, ok := t.Elt.(*ast.Ident); ok {
			if ident.Name == "byte" {
				return errWrap("e.Bytes(" + field + ")"), true
			}
			if body, ok := encodeElemFunc(ident.Name, unions); ok {
				return errWrap(runtimeName("EncodeSlice") + "(e, " + field + ", " + body + ")"), true
			}
		}
		if star, ok := t.Elt.(*ast.StarExpr); ok {
			if ident, ok := star.X.(*ast.Ident); ok && ast.IsExported(ident.Name) {
				fn := "func(e *" + runtimeName("Encoder") + ", v *" + ident.Name + ") error {\n" +
					"if v == nil {\nreturn e.Null()\n}\nreturn v.EncodeCBOR(e)\n}"
				return errWrap(runtimeName("EncodeSlice") + "(e, " + field + ", " + fn + ")"), true
			}
		}
		return "", false

	case *ast.MapType:
		keyIdent, okKey := t.Key.(*ast.Ident)
		if !okKey {
			return "", false
		}
		keyFn, ok := encodeElemFunc(keyIdent.Name, nil)
		if !ok {
			return "", false
		}
		if valIdent, okVal := t.Value.(*ast.Ident); okVal {
			if valFn, ok := encodeElemFunc(valIdent.Name, unions); ok {
				return errWrap(runtimeName("EncodeMapOf") + "(e, " + field + ", " + keyFn + ", " + valFn + ")"), true
			}
		}
		return "", false

	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			if fn, ok := encodeElemFunc(ident.Name, unions); ok {
				return errWrap(runtimeName("EncodeOption") + "(e, " + field + ", " + fn + ")"), true
			}
		}
		return "", false
	}
	return "", false
}

// encodeElemFunc builds a func(e *cbor.Encoder, v T) error literal for
// an element type usable with the EncodeSlice/EncodeMapOf/EncodeOption
// helpers.
func encodeElemFunc(typeName string, unions map[string]struct{}) (string, bool) {
	if call, ok := scalarEncodeCall("v", typeName); ok {
		return "func(e *" + runtimeName("Encoder") + ", v " + typeName + ") error {\nreturn " + call + "\n}", true
	}
	if unions != nil {
		if _, ok := unions[typeName]; ok {
			return "func(e *" + runtimeName("Encoder") + ", v " + typeName + ") error {\nreturn Encode" + typeName + "(e, v)\n}", true
		}
	}
	if ast.IsExported(typeName) {
		return "func(e *" + runtimeName("Encoder") + ", v " + typeName + ") error {\nreturn v.EncodeCBOR(e)\n}", true
	}
	return "", false
}

// decodeElemBody builds the body of a func(d *cbor.Decoder) (T, error)
// literal for an element type.
func decodeElemBody(typeName string, unions map[string]struct{}) (string, bool) {
	if readCall, assign, ok := scalarDecode(typeName); ok {
		if assign == "v" {
			return "return " + readCall, true
		}
		return "v, err := " + readCall + "\nreturn " + assign + ", err", true
	}
	if unions != nil {
		if _, ok := unions[typeName]; ok {
			return "return Decode" + typeName + "(d)", true
		}
	}
	if ast.IsExported(typeName) {
		return "var el " + typeName + "\nerr := el.DecodeCBOR(d)\nreturn el, err", true
	}
	return "", false
}

// decodeCaseForField builds the switch-case body that reads a field
// value, in terms of receiver 'x' and decoder 'd'.
func decodeCaseForField(goName string, typ ast.Expr, unions map[string]struct{}) (string, bool) {
	data := decodeCaseTemplateData{Field: goName}
	tmplName := ""

	switch t := typ.(type) {
	case *ast.Ident:
		if readCall, assign, ok := scalarDecode(t.Name); ok {
			data.ReadCall = readCall
			data.Assign = assign
			tmplName = "decodeCaseBasic"
			break
		}
		if _, ok := unions[t.Name]; ok {
			data.TypeName = t.Name
			tmplName = "decodeCaseUnion"
			break
		}
		if ast.IsExported(t.Name) {
			tmplName = "decodeCaseNested"
			break
		}
		return "", false

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "time" {
			switch t.Sel.Name {
			case "Time":
				data.ReadCall = "d.Time()"
				data.Assign = "v"
				tmplName = "decodeCaseBasic"
			case "Duration":
				data.ReadCall = "d.Duration()"
				data.Assign = "v"
				tmplName = "decodeCaseBasic"
			default:
				return "", false
			}
			break
		}
		return "", false

	case *ast.ArrayType:
		if t.Len != nil {
			return "", false
		}
		if ident, ok := t.Elt.(*ast.Ident); ok {
			if ident.Name == "byte" {
				tmplName = "decodeCaseBytes"
				break
			}
			if body, ok := decodeElemBody(ident.Name, unions); ok {
				data.ElemType = ident.Name
				data.ElemBody = body
				tmplName = "decodeCaseSlice"
				break
			}
		}
		if star, ok := t.Elt.(*ast.StarExpr); ok {
			if ident, ok := star.X.(*ast.Ident); ok && ast.IsExported(ident.Name) {
				data.ElemType = "*" + ident.Name
				data.ElemBody = "if d.IsNull() {\nif err := d.Null(); err != nil {\nreturn nil, err\n}\nreturn nil, nil\n}\n" +
					"el := new(" + ident.Name + ")\nerr := el.DecodeCBOR(d)\nreturn el, err"
				tmplName = "decodeCaseSlice"
				break
			}
		}
		return "", false

	case *ast.MapType:
		keyIdent, okKey := t.Key.(*ast.Ident)
		if !okKey {
			return "", false
		}
		keyBody, ok := decodeElemBody(keyIdent.Name, nil)
		if !ok {
			return "", false
		}
		valIdent, okVal := t.Value.(*ast.Ident)
		if !okVal {
			return "", false
		}
		valBody, ok := decodeElemBody(valIdent.Name, unions)
		if !ok {
			return "", false
		}
		data.KeyType = keyIdent.Name
		data.KeyBody = keyBody
		data.ElemType = valIdent.Name
		data.ElemBody = valBody
		tmplName = "decodeCaseMap"

	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			if body, ok := decodeElemBody(ident.Name, unions); ok {
				data.ElemType = ident.Name
				data.ElemBody = body
				tmplName = "decodeCaseOption"
				break
			}
		}
		return "", false

	default:
		return "", false
	}

	var buf bytes.Buffer
	if err := decodeCaseTemplate.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return "", false
	}
	expr := strings.TrimRight(buf.String(), "\n")
	return expr, expr != ""
}
