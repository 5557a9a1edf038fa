package xmlstore

import (
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed schema/character.xsd
var embeddedSchema embed.FS

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	dateLayout   = "2006-01-02"
	unbounded    = -1
)

// The xsd* types mirror the subset of XML Schema the character schema uses.
type xsdSchema struct {
	Elements     []xsdElement     `xml:"element"`
	ComplexTypes []xsdComplexType `xml:"complexType"`
	SimpleTypes  []xsdSimpleType  `xml:"simpleType"`
}

type xsdElement struct {
	Name        string          `xml:"name,attr"`
	Type        string          `xml:"type,attr"`
	MinOccurs   string          `xml:"minOccurs,attr"`
	MaxOccurs   string          `xml:"maxOccurs,attr"`
	Nillable    bool            `xml:"nillable,attr"`
	ComplexType *xsdComplexType `xml:"complexType"`
	SimpleType  *xsdSimpleType  `xml:"simpleType"`
}

type xsdComplexType struct {
	Name          string            `xml:"name,attr"`
	Sequence      *xsdSequence      `xml:"sequence"`
	SimpleContent *xsdSimpleContent `xml:"simpleContent"`
	Attributes    []xsdAttribute    `xml:"attribute"`
}

type xsdSequence struct {
	Elements []xsdElement `xml:"element"`
}

type xsdSimpleContent struct {
	Extension xsdExtension `xml:"extension"`
}

type xsdExtension struct {
	Base       string         `xml:"base,attr"`
	Attributes []xsdAttribute `xml:"attribute"`
}

type xsdAttribute struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Use  string `xml:"use,attr"`
}

type xsdSimpleType struct {
	Name        string         `xml:"name,attr"`
	Restriction xsdRestriction `xml:"restriction"`
}

type xsdRestriction struct {
	Base         string           `xml:"base,attr"`
	Enumerations []xsdEnumeration `xml:"enumeration"`
}

type xsdEnumeration struct {
	Value string `xml:"value,attr"`
}

// simpleDecl is a compiled text type: a built-in base plus optional enumeration.
type simpleDecl struct {
	base string
	enum []string
}

type attrDecl struct {
	name     string
	typ      *simpleDecl
	required bool
}

// elementDecl is a compiled element declaration. Exactly one of text and
// children describes the content; an element with neither must be empty.
type elementDecl struct {
	name     string
	min, max int
	nillable bool
	attrs    []attrDecl
	text     *simpleDecl
	children []*elementDecl
}

// Schema validates documents against a compiled XML Schema. It supports
// sequences, minOccurs and maxOccurs, nillable elements, simple content
// extensions, attributes, enumerations and the xs:string, xs:int,
// xs:integer, xs:boolean and xs:date built-in types.
type Schema struct {
	root *elementDecl
}

// CharacterSchema returns the bundled character file schema.
//
// Postcondition: Returns a compiled Schema or a non-nil error.
func CharacterSchema() (*Schema, error) {
	f, err := embeddedSchema.Open("schema/character.xsd")
	if err != nil {
		return nil, fmt.Errorf("opening character schema: %w", err)
	}
	defer f.Close()
	return ParseSchema(f)
}

// ParseSchema reads and compiles an XML Schema document with exactly one
// top-level element declaration.
//
// Postcondition: Returns a compiled Schema or a non-nil error.
func ParseSchema(r io.Reader) (*Schema, error) {
	var doc xsdSchema
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if len(doc.Elements) != 1 {
		return nil, fmt.Errorf("schema: want exactly one top-level element, got %d", len(doc.Elements))
	}
	c := &schemaCompiler{
		complex: make(map[string]xsdComplexType),
		simple:  make(map[string]xsdSimpleType),
	}
	for _, ct := range doc.ComplexTypes {
		c.complex[ct.Name] = ct
	}
	for _, st := range doc.SimpleTypes {
		c.simple[st.Name] = st
	}
	root, err := c.element(doc.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Schema{root: root}, nil
}

type schemaCompiler struct {
	complex map[string]xsdComplexType
	simple  map[string]xsdSimpleType
}

var builtinTypes = []string{"string", "int", "integer", "boolean", "date"}

func localName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}

func occurs(v string, def int) (int, error) {
	switch v {
	case "":
		return def, nil
	case "unbounded":
		return unbounded, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid occurrence %q", v)
	}
	return n, nil
}

func (c *schemaCompiler) element(e xsdElement) (*elementDecl, error) {
	d := &elementDecl{name: e.Name, nillable: e.Nillable}
	var err error
	if d.min, err = occurs(e.MinOccurs, 1); err != nil {
		return nil, fmt.Errorf("element %q: %w", e.Name, err)
	}
	if d.max, err = occurs(e.MaxOccurs, 1); err != nil {
		return nil, fmt.Errorf("element %q: %w", e.Name, err)
	}
	switch {
	case e.ComplexType != nil:
		err = c.complexType(d, *e.ComplexType)
	case e.SimpleType != nil:
		d.text, err = c.restriction(e.SimpleType.Restriction)
	case e.Type != "":
		err = c.resolve(d, e.Type)
	default:
		d.text = &simpleDecl{base: "string"}
	}
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", e.Name, err)
	}
	return d, nil
}

func (c *schemaCompiler) resolve(d *elementDecl, typ string) error {
	_, local := localName(typ)
	if ct, ok := c.complex[local]; ok {
		return c.complexType(d, ct)
	}
	st, err := c.simpleType(typ)
	if err != nil {
		return err
	}
	d.text = st
	return nil
}

func (c *schemaCompiler) simpleType(typ string) (*simpleDecl, error) {
	prefix, local := localName(typ)
	if st, ok := c.simple[local]; ok {
		return c.restriction(st.Restriction)
	}
	if prefix != "" && slices.Contains(builtinTypes, local) {
		return &simpleDecl{base: local}, nil
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}

func (c *schemaCompiler) restriction(r xsdRestriction) (*simpleDecl, error) {
	base, err := c.simpleType(r.Base)
	if err != nil {
		return nil, err
	}
	out := &simpleDecl{base: base.base, enum: slices.Clone(base.enum)}
	for _, e := range r.Enumerations {
		out.enum = append(out.enum, e.Value)
	}
	return out, nil
}

func (c *schemaCompiler) attributes(attrs []xsdAttribute) ([]attrDecl, error) {
	out := make([]attrDecl, 0, len(attrs))
	for _, a := range attrs {
		typ := &simpleDecl{base: "string"}
		if a.Type != "" {
			var err error
			if typ, err = c.simpleType(a.Type); err != nil {
				return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
			}
		}
		out = append(out, attrDecl{name: a.Name, typ: typ, required: a.Use == "required"})
	}
	return out, nil
}

func (c *schemaCompiler) complexType(d *elementDecl, ct xsdComplexType) error {
	attrs, err := c.attributes(ct.Attributes)
	if err != nil {
		return err
	}
	d.attrs = attrs
	switch {
	case ct.SimpleContent != nil:
		ext := ct.SimpleContent.Extension
		if d.text, err = c.simpleType(ext.Base); err != nil {
			return err
		}
		extAttrs, err := c.attributes(ext.Attributes)
		if err != nil {
			return err
		}
		d.attrs = append(d.attrs, extAttrs...)
	case ct.Sequence != nil:
		d.children = make([]*elementDecl, 0, len(ct.Sequence.Elements))
		for _, e := range ct.Sequence.Elements {
			child, err := c.element(e)
			if err != nil {
				return err
			}
			d.children = append(d.children, child)
		}
	}
	return nil
}

// node is one element of a parsed instance document.
type node struct {
	name     string
	line     int
	attrs    []xml.Attr
	text     strings.Builder
	children []*node
}

// SchemaError reports the first schema violation found in a document.
type SchemaError struct {
	Line    int
	Element string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("line %d: element <%s>: %s", e.Line, e.Element, e.Reason)
}

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("schema validation failed")

// Is reports whether target is ErrSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

func invalid(n *node, format string, args ...any) error {
	return &SchemaError{Line: n.line, Element: n.name, Reason: fmt.Sprintf(format, args...)}
}

// Validate parses the document in r and checks it against the schema.
//
// Postcondition: Returns nil iff the document is well formed and valid; a
// schema violation is returned as a *SchemaError.
func (s *Schema) Validate(r io.Reader) error {
	root, err := parseTree(r)
	if err != nil {
		return err
	}
	if root.name != s.root.name {
		return invalid(root, "unexpected root element, want <%s>", s.root.name)
	}
	return s.root.validate(root)
}

func parseTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			n := &node{name: t.Name.Local, line: line, attrs: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing document: line %d: second root element <%s>", line, n.name)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("parsing document: no root element")
	}
	return root, nil
}

func isXSI(a xml.Attr) bool {
	return a.Name.Space == xsiNamespace || a.Name.Space == "xsi"
}

func isNamespaceDecl(a xml.Attr) bool {
	return a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns")
}

func (d *elementDecl) validate(n *node) error {
	isNil := false
	seen := make(map[string]bool, len(n.attrs))
	for _, a := range n.attrs {
		switch {
		case isNamespaceDecl(a):
			continue
		case isXSI(a):
			switch a.Name.Local {
			case "nil":
				v, err := strconv.ParseBool(strings.TrimSpace(a.Value))
				if err != nil {
					return invalid(n, "xsi:nil value %q is not a boolean", a.Value)
				}
				if v && !d.nillable {
					return invalid(n, "element is not nillable")
				}
				isNil = v
			case "schemaLocation", "noNamespaceSchemaLocation", "type":
			default:
				return invalid(n, "unexpected attribute xsi:%s", a.Name.Local)
			}
			continue
		}
		i := slices.IndexFunc(d.attrs, func(ad attrDecl) bool { return ad.name == a.Name.Local })
		if i < 0 {
			return invalid(n, "unexpected attribute %q", a.Name.Local)
		}
		if err := d.attrs[i].typ.check(a.Value); err != nil {
			return invalid(n, "attribute %q: %v", a.Name.Local, err)
		}
		seen[a.Name.Local] = true
	}
	for _, ad := range d.attrs {
		if ad.required && !seen[ad.name] {
			return invalid(n, "missing required attribute %q", ad.name)
		}
	}

	text := n.text.String()
	if isNil {
		if len(n.children) > 0 || strings.TrimSpace(text) != "" {
			return invalid(n, "nil element must be empty")
		}
		return nil
	}

	switch {
	case d.text != nil:
		if len(n.children) > 0 {
			return invalid(n.children[0], "unexpected element in text content of <%s>", n.name)
		}
		if err := d.text.check(text); err != nil {
			return invalid(n, "%v", err)
		}
		return nil
	case d.children == nil:
		if len(n.children) > 0 || strings.TrimSpace(text) != "" {
			return invalid(n, "element must be empty")
		}
		return nil
	}

	if strings.TrimSpace(text) != "" {
		return invalid(n, "unexpected text content")
	}
	i := 0
	for _, p := range d.children {
		count := 0
		for i < len(n.children) && n.children[i].name == p.name && (p.max == unbounded || count < p.max) {
			if err := p.validate(n.children[i]); err != nil {
				return err
			}
			count++
			i++
		}
		if count < p.min {
			return invalid(n, "missing element <%s>", p.name)
		}
	}
	if i < len(n.children) {
		return invalid(n.children[i], "unexpected element in <%s>", n.name)
	}
	return nil
}

func (s *simpleDecl) check(v string) error {
	trimmed := strings.TrimSpace(v)
	switch s.base {
	case "int":
		if _, err := strconv.ParseInt(trimmed, 10, 32); err != nil {
			return fmt.Errorf("value %q is not a valid xs:int", v)
		}
	case "integer":
		if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
			return fmt.Errorf("value %q is not a valid xs:integer", v)
		}
	case "boolean":
		if _, err := strconv.ParseBool(trimmed); err != nil {
			return fmt.Errorf("value %q is not a valid xs:boolean", v)
		}
	case "date":
		if _, err := time.Parse(dateLayout, trimmed); err != nil {
			return fmt.Errorf("value %q is not a valid xs:date", v)
		}
	}
	if len(s.enum) > 0 && !slices.Contains(s.enum, v) {
		return fmt.Errorf("value %q is not one of %v", v, s.enum)
	}
	return nil
}
