package jsonschema

import (
	"strings"

	"math/big"

	"github.com/goccy/go-json"
)

// Schema is a compiled schema, ready to validate instances. The zero
// value is not usable; obtain one from a [Compiler] or [Engine].
type Schema struct {
	addr           urlPtr
	resource       *Schema
	dynamicAnchors map[string]*Schema

	// evaluation shortcuts recorded at compile time; validation skips
	// unevaluated tracking when the schema covers everything anyway
	evaluatesAllProps bool
	evaluatesAllItems bool
	evaluatedPrefix   int

	DraftVersion int
	Location     string

	Bool *bool // boolean schema

	// identity and references
	ID              string
	Anchor          string
	Ref             *Schema
	RecursiveRef    *Schema
	RecursiveAnchor bool
	DynamicRef      *DynamicRef
	DynamicAnchor   string

	// any instance
	Types  *Types
	Const  *any
	Enum   *Enum
	Format *Format

	// in-place applicators
	Not   *Schema
	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	If    *Schema
	Then  *Schema
	Else  *Schema

	// objects
	MinProperties         *int
	MaxProperties         *int
	Required              []string
	Properties            map[string]*Schema
	PatternProperties     map[Regexp]*Schema
	AdditionalProperties  any // bool or *Schema when present
	PropertyNames         *Schema
	Dependencies          map[string]any // []string or *Schema per property
	DependentRequired     map[string][]string
	DependentSchemas      map[string]*Schema
	UnevaluatedProperties *Schema

	// arrays
	MinItems         *int
	MaxItems         *int
	UniqueItems      bool
	Items            any // *Schema or []*Schema, drafts before 2020-12
	AdditionalItems  any // bool or *Schema, drafts before 2020-12
	PrefixItems      []*Schema
	RestItems        *Schema // the items keyword from 2020-12 on
	UnevaluatedItems *Schema
	Contains         *Schema
	MinContains      *int
	MaxContains      *int

	// strings
	MinLength        *int
	MaxLength        *int
	Pattern          Regexp
	ContentEncoding  *Decoder
	ContentMediaType *MediaType
	ContentSchema    *Schema

	// numbers
	Minimum          *big.Rat
	Maximum          *big.Rat
	ExclusiveMinimum *big.Rat
	ExclusiveMaximum *big.Rat
	MultipleOf       *big.Rat

	// annotations
	Title       string
	Description string
	Default     *any
	Comment     string
	ReadOnly    bool
	WriteOnly   bool
	Deprecated  bool
	Examples    []any
}

func schemaAt(addr urlPtr) *Schema {
	return &Schema{addr: addr, Location: addr.String()}
}

func (sch *Schema) String() string { return sch.Location }

// valueKind classifies a decoded json value. Kinds are single bits so
// that a set of admissible kinds fits in a [Types] mask.
type valueKind uint

const (
	kindInvalid valueKind = 0
	kindNull    valueKind = 1
	kindBoolean valueKind = 2
	kindNumber  valueKind = 4
	kindInteger valueKind = 8
	kindString  valueKind = 16
	kindArray   valueKind = 32
	kindObject  valueKind = 64
)

var kindNames = []struct {
	kind valueKind
	name string
}{
	{kindNull, "null"},
	{kindBoolean, "boolean"},
	{kindNumber, "number"},
	{kindInteger, "integer"},
	{kindString, "string"},
	{kindArray, "array"},
	{kindObject, "object"},
}

func kindOf(v any) valueKind {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBoolean
	case string:
		return kindString
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindNumber
	}
	return kindInvalid
}

func kindFromName(name string) valueKind {
	for _, entry := range kindNames {
		if entry.name == name {
			return entry.kind
		}
	}
	return kindInvalid
}

func (k valueKind) String() string {
	for _, entry := range kindNames {
		if entry.kind == k {
			return entry.name
		}
	}
	return ""
}

// Types is the set of json value kinds an instance may have.
type Types uint

func typesFrom(v any) *Types {
	var set Types
	switch v := v.(type) {
	case string:
		set.Add(v)
	case []any:
		for _, name := range v {
			if s, ok := name.(string); ok {
				set.Add(s)
			}
		}
	}
	if set.IsEmpty() {
		return nil
	}
	return &set
}

// Add adds the kind with the given json name. Unknown names are ignored.
func (t *Types) Add(name string) {
	t.include(kindFromName(name))
}

func (t *Types) include(k valueKind) {
	*t |= Types(k)
}

func (t Types) contains(k valueKind) bool {
	return t&Types(k) != 0
}

func (t Types) IsEmpty() bool {
	return t == 0
}

func (t Types) ToStrings() []string {
	var names []string
	for _, entry := range kindNames {
		if t.contains(entry.kind) {
			names = append(names, entry.name)
		}
	}
	return names
}

func (t Types) String() string {
	return "[" + strings.Join(t.ToStrings(), " ") + "]"
}

// Enum is the compiled enum keyword. The kinds occurring among the
// listed values are precomputed so validation can skip the scan whenever
// the instance kind never occurs in the list.
type Enum struct {
	Values []any
	kinds  Types
}

func enumOf(values []any) *Enum {
	e := &Enum{Values: values}
	for _, v := range values {
		e.kinds.include(kindOf(v))
	}
	return e
}

func (e *Enum) matches(v any, kind valueKind) bool {
	if !e.kinds.contains(kind) {
		return false
	}
	for _, candidate := range e.Values {
		if equals(v, candidate) {
			return true
		}
	}
	return false
}

// DynamicRef is the compiled $dynamicRef keyword. Anchor is empty when
// the fragment is a plain json pointer, in which case the reference
// behaves like $ref.
type DynamicRef struct {
	Ref    *Schema
	Anchor string
}
