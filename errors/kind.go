package errors

import (
	"math/big"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/message"
)

// Kind identifies which keyword produced a validation error and carries the
// data needed to render it.
type Kind interface {
	// KeywordPath returns the location of the keyword producing the error,
	// relative to the schema reporting it.
	KeywordPath() []string
	// LocalizedString renders the error message with the given printer.
	LocalizedString(*message.Printer) string
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "???"
	}
	return string(b)
}

func quoteList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(item)
		b.WriteByte('\'')
	}
	return b.String()
}

// --

// SchemaKind is the root of a validation error tree.
type SchemaKind struct {
	Location string
}

func (*SchemaKind) KeywordPath() []string { return nil }

func (k *SchemaKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("jsonschema validation failed with %s", quote(k.Location))
}

// GroupKind groups sibling failures under one schema.
type GroupKind struct{}

func (*GroupKind) KeywordPath() []string { return nil }

func (*GroupKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("validation failed")
}

// FalseSchemaKind reports the universally rejecting schema.
type FalseSchemaKind struct{}

func (*FalseSchemaKind) KeywordPath() []string { return nil }

func (*FalseSchemaKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("false schema")
}

// RefCycleKind reports a validation cycle: a reference re-entered the same
// schema at the same instance location.
type RefCycleKind struct {
	URL              string
	KeywordLocation1 string
	KeywordLocation2 string
}

func (*RefCycleKind) KeywordPath() []string { return nil }

func (k *RefCycleKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("both %s and %s resolve to %q causing reference cycle", k.KeywordLocation1, k.KeywordLocation2, k.URL)
}

// ReferenceKind reports a failure behind $ref, $dynamicRef or $recursiveRef.
type ReferenceKind struct {
	Keyword string
	URL     string
}

func (k *ReferenceKind) KeywordPath() []string { return []string{k.Keyword} }

func (k *ReferenceKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("validation failed against %q", k.URL)
}

// InvalidJSONValueKind reports a value outside the JSON data model.
type InvalidJSONValueKind struct {
	Value any
}

func (*InvalidJSONValueKind) KeywordPath() []string { return nil }

func (k *InvalidJSONValueKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("invalid json value %v", k.Value)
}

// --

type TypeKind struct {
	Got  string
	Want []string
}

func (*TypeKind) KeywordPath() []string { return []string{"type"} }

func (k *TypeKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("got %s, want %s", k.Got, strings.Join(k.Want, " or "))
}

type EnumKind struct {
	Got  any
	Want []any
}

func (*EnumKind) KeywordPath() []string { return []string{"enum"} }

func (k *EnumKind) LocalizedString(p *message.Printer) string {
	allPrimitive := true
	for _, item := range k.Want {
		switch item.(type) {
		case []any, map[string]any:
			allPrimitive = false
		}
	}
	if allPrimitive {
		var want []string
		for _, item := range k.Want {
			want = append(want, jsonString(item))
		}
		return p.Sprintf("value must be one of %s", strings.Join(want, ", "))
	}
	return p.Sprintf("value must be one of the enum values")
}

type ConstKind struct {
	Got  any
	Want any
}

func (*ConstKind) KeywordPath() []string { return []string{"const"} }

func (k *ConstKind) LocalizedString(p *message.Printer) string {
	switch k.Want.(type) {
	case []any, map[string]any:
		return p.Sprintf("value must be the const value")
	default:
		return p.Sprintf("value must be %s", jsonString(k.Want))
	}
}

type FormatKind struct {
	Got  any
	Want string
	Err  error
}

func (*FormatKind) KeywordPath() []string { return []string{"format"} }

func (k *FormatKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("%s is not valid %s: %v", jsonString(k.Got), quote(k.Want), k.Err)
}

// --

type MinPropertiesKind struct {
	Got, Want int
}

func (*MinPropertiesKind) KeywordPath() []string { return []string{"minProperties"} }

func (k *MinPropertiesKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("minProperties: got %d, want %d", k.Got, k.Want)
}

type MaxPropertiesKind struct {
	Got, Want int
}

func (*MaxPropertiesKind) KeywordPath() []string { return []string{"maxProperties"} }

func (k *MaxPropertiesKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("maxProperties: got %d, want %d", k.Got, k.Want)
}

type RequiredKind struct {
	Missing []string
}

func (*RequiredKind) KeywordPath() []string { return []string{"required"} }

func (k *RequiredKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("missing properties %s", quoteList(k.Missing))
}

type DependencyKind struct {
	Prop    string
	Missing []string
}

func (k *DependencyKind) KeywordPath() []string { return []string{"dependencies", k.Prop} }

func (k *DependencyKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("properties %s required, if %s exists", quoteList(k.Missing), quote(k.Prop))
}

type DependentRequiredKind struct {
	Prop    string
	Missing []string
}

func (k *DependentRequiredKind) KeywordPath() []string { return []string{"dependentRequired", k.Prop} }

func (k *DependentRequiredKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("properties %s required, if %s exists", quoteList(k.Missing), quote(k.Prop))
}

type AdditionalPropertiesKind struct {
	Properties []string
}

func (*AdditionalPropertiesKind) KeywordPath() []string { return []string{"additionalProperties"} }

func (k *AdditionalPropertiesKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("additional properties %s not allowed", quoteList(k.Properties))
}

type PropertyNamesKind struct {
	Property string
}

func (*PropertyNamesKind) KeywordPath() []string { return []string{"propertyNames"} }

func (k *PropertyNamesKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("invalid property name %s", quote(k.Property))
}

// --

type MinItemsKind struct {
	Got, Want int
}

func (*MinItemsKind) KeywordPath() []string { return []string{"minItems"} }

func (k *MinItemsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("minItems: got %d, want %d", k.Got, k.Want)
}

type MaxItemsKind struct {
	Got, Want int
}

func (*MaxItemsKind) KeywordPath() []string { return []string{"maxItems"} }

func (k *MaxItemsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("maxItems: got %d, want %d", k.Got, k.Want)
}

type UniqueItemsKind struct {
	Duplicates [2]int
}

func (*UniqueItemsKind) KeywordPath() []string { return []string{"uniqueItems"} }

func (k *UniqueItemsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("items at %d and %d are equal", k.Duplicates[0], k.Duplicates[1])
}

type AdditionalItemsKind struct {
	Count int
}

func (*AdditionalItemsKind) KeywordPath() []string { return []string{"additionalItems"} }

func (k *AdditionalItemsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("last %d additional items not allowed", k.Count)
}

type ContainsKind struct{}

func (*ContainsKind) KeywordPath() []string { return []string{"contains"} }

func (*ContainsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("no items match contains schema")
}

type MinContainsKind struct {
	Got  []int
	Want int
}

func (*MinContainsKind) KeywordPath() []string { return []string{"minContains"} }

func (k *MinContainsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("min %d items required to match contains schema, but matched %d items at %v", k.Want, len(k.Got), k.Got)
}

type MaxContainsKind struct {
	Got  []int
	Want int
}

func (*MaxContainsKind) KeywordPath() []string { return []string{"maxContains"} }

func (k *MaxContainsKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("max %d items allowed to match contains schema, but matched %d items at %v", k.Want, len(k.Got), k.Got)
}

// --

type MinLengthKind struct {
	Got, Want int
}

func (*MinLengthKind) KeywordPath() []string { return []string{"minLength"} }

func (k *MinLengthKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("minLength: got %d, want %d", k.Got, k.Want)
}

type MaxLengthKind struct {
	Got, Want int
}

func (*MaxLengthKind) KeywordPath() []string { return []string{"maxLength"} }

func (k *MaxLengthKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("maxLength: got %d, want %d", k.Got, k.Want)
}

type PatternKind struct {
	Got, Want string
}

func (*PatternKind) KeywordPath() []string { return []string{"pattern"} }

func (k *PatternKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("%s does not match pattern %s", quote(k.Got), quote(k.Want))
}

type ContentEncodingKind struct {
	Want string
	Err  error
}

func (*ContentEncodingKind) KeywordPath() []string { return []string{"contentEncoding"} }

func (k *ContentEncodingKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("value is not %s encoded: %v", quote(k.Want), k.Err)
}

type ContentMediaTypeKind struct {
	Got  []byte
	Want string
	Err  error
}

func (*ContentMediaTypeKind) KeywordPath() []string { return []string{"contentMediaType"} }

func (k *ContentMediaTypeKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("value is not of media type %s: %v", quote(k.Want), k.Err)
}

type ContentSchemaKind struct{}

func (*ContentSchemaKind) KeywordPath() []string { return []string{"contentSchema"} }

func (*ContentSchemaKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("decoded value does not validate against contentSchema")
}

// --

type MinimumKind struct {
	Got, Want *big.Rat
}

func (*MinimumKind) KeywordPath() []string { return []string{"minimum"} }

func (k *MinimumKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("minimum: got %s, want %s", ratString(k.Got), ratString(k.Want))
}

type MaximumKind struct {
	Got, Want *big.Rat
}

func (*MaximumKind) KeywordPath() []string { return []string{"maximum"} }

func (k *MaximumKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("maximum: got %s, want %s", ratString(k.Got), ratString(k.Want))
}

type ExclusiveMinimumKind struct {
	Got, Want *big.Rat
}

func (*ExclusiveMinimumKind) KeywordPath() []string { return []string{"exclusiveMinimum"} }

func (k *ExclusiveMinimumKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("exclusiveMinimum: got %s, want %s", ratString(k.Got), ratString(k.Want))
}

type ExclusiveMaximumKind struct {
	Got, Want *big.Rat
}

func (*ExclusiveMaximumKind) KeywordPath() []string { return []string{"exclusiveMaximum"} }

func (k *ExclusiveMaximumKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("exclusiveMaximum: got %s, want %s", ratString(k.Got), ratString(k.Want))
}

type MultipleOfKind struct {
	Got, Want *big.Rat
}

func (*MultipleOfKind) KeywordPath() []string { return []string{"multipleOf"} }

func (k *MultipleOfKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("multipleOf: got %s, want %s", ratString(k.Got), ratString(k.Want))
}

// --

type NotKind struct{}

func (*NotKind) KeywordPath() []string { return []string{"not"} }

func (*NotKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("not failed")
}

type AllOfKind struct{}

func (*AllOfKind) KeywordPath() []string { return []string{"allOf"} }

func (*AllOfKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("allOf failed")
}

type AnyOfKind struct{}

func (*AnyOfKind) KeywordPath() []string { return []string{"anyOf"} }

func (*AnyOfKind) LocalizedString(p *message.Printer) string {
	return p.Sprintf("anyOf failed")
}

type OneOfKind struct {
	// Subschemas lists the matched subschema indexes.
	// Nil means none matched.
	Subschemas []int
}

func (*OneOfKind) KeywordPath() []string { return []string{"oneOf"} }

func (k *OneOfKind) LocalizedString(p *message.Printer) string {
	if len(k.Subschemas) == 0 {
		return p.Sprintf("oneOf failed, none matched")
	}
	return p.Sprintf("oneOf failed, subschemas %d, %d matched", k.Subschemas[0], k.Subschemas[1])
}

// --

func quote(s string) string {
	s = jsonString(s)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s[1:len(s)-1] + "'"
}

func ratString(r *big.Rat) string {
	if r == nil {
		return "???"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	return r.FloatString(10)
}
