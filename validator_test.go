package jsonschema_test

import (
	"testing"

	"github.com/jacoelho/jsonschema"
	jserrors "github.com/jacoelho/jsonschema/errors"
)

func TestValidateType(t *testing.T) {
	sch := compileString(t, `{"type": ["integer", "string"]}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`1`, true},
		{`1.0`, true},
		{`"one"`, true},
		{`1.5`, false},
		{`true`, false},
		{`null`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestValidateRefCycle(t *testing.T) {
	sch := compileString(t, `{"$ref": "#"}`)
	err := sch.Validate(mustUnmarshal(t, `{"a": 1}`))
	if err == nil {
		t.Fatal("Validate() expected cycle error")
	}
	if !hasKind[*jserrors.RefCycleKind](err) {
		t.Fatalf("Validate() error = %v, want RefCycleKind", err)
	}
}

func hasKind[T jserrors.Kind](err error) bool {
	verr, ok := jserrors.AsValidationError(err)
	if !ok {
		return false
	}
	var walk func(e *jserrors.ValidationError) bool
	walk = func(e *jserrors.ValidationError) bool {
		if _, ok := e.Kind.(T); ok {
			return true
		}
		for _, cause := range e.Causes {
			if walk(cause) {
				return true
			}
		}
		return false
	}
	return walk(verr)
}

func TestUniqueItemsNumericEquality(t *testing.T) {
	sch := compileString(t, `{"uniqueItems": true}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`[1, 2]`, true},
		{`[1, 1.0]`, false},
		{`[1, 1e0]`, false},
		{`["1", 1]`, true},
		{`[{"a": 1, "b": 2}, {"b": 2.0, "a": 1}]`, false},
		{`[[1], [1.0]]`, false},
		{`[[1], [2]]`, true},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestMultipleOfExact(t *testing.T) {
	sch := compileString(t, `{"multipleOf": 0.01}`)
	if err := sch.Validate(mustUnmarshal(t, `19.99`)); err != nil {
		t.Fatalf("Validate(19.99) error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `19.995`)); err == nil {
		t.Fatal("Validate(19.995) expected error")
	}
}

func TestConstNumericEquality(t *testing.T) {
	sch := compileString(t, `{"const": 1}`)
	if err := sch.Validate(mustUnmarshal(t, `1.0`)); err != nil {
		t.Fatalf("Validate(1.0) error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `1.5`)); err == nil {
		t.Fatal("Validate(1.5) expected error")
	}
}

func TestIfThenElse(t *testing.T) {
	sch := compileString(t, `{
		"if": {"properties": {"kind": {"const": "user"}}},
		"then": {"required": ["name"]},
		"else": {"required": ["code"]}
	}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`{"kind": "user", "name": "alice"}`, true},
		{`{"kind": "user"}`, false},
		{`{"kind": "robot", "code": 7}`, true},
		{`{"kind": "robot"}`, false},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestContainsBounds(t *testing.T) {
	sch := compileString(t, `{
		"contains": {"type": "integer"},
		"minContains": 2,
		"maxContains": 3
	}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`["a", 1, 2]`, true},
		{`[1, 2, 3]`, true},
		{`[1]`, false},
		{`[1, 2, 3, 4]`, false},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestUnevaluatedPropertiesWithRef(t *testing.T) {
	sch := compileString(t, `{
		"$ref": "#/$defs/base",
		"unevaluatedProperties": false,
		"$defs": {
			"base": {"properties": {"a": {"type": "integer"}}}
		}
	}`)

	if err := sch.Validate(mustUnmarshal(t, `{"a": 1}`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `{"b": 1}`)); err == nil {
		t.Fatal("Validate() expected error for unevaluated property")
	}
}

func TestUnevaluatedItemsWithAllOf(t *testing.T) {
	sch := compileString(t, `{
		"allOf": [
			{"prefixItems": [{"type": "integer"}]}
		],
		"unevaluatedItems": false
	}`)

	if err := sch.Validate(mustUnmarshal(t, `[1]`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `[1, 2]`)); err == nil {
		t.Fatal("Validate() expected error for unevaluated item")
	}
}

func TestDynamicRef(t *testing.T) {
	c := jsonschema.NewCompiler()
	tree := mustUnmarshal(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/tree",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"data": true,
			"children": {
				"type": "array",
				"items": {"$dynamicRef": "#node"}
			}
		}
	}`)
	strictTree := mustUnmarshal(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/strict-tree",
		"$dynamicAnchor": "node",
		"$ref": "tree",
		"unevaluatedProperties": false
	}`)
	if err := c.AddResource("https://example.com/tree", tree); err != nil {
		t.Fatalf("AddResource(tree) error = %v", err)
	}
	if err := c.AddResource("https://example.com/strict-tree", strictTree); err != nil {
		t.Fatalf("AddResource(strict-tree) error = %v", err)
	}
	sch, err := c.Compile("https://example.com/strict-tree")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := sch.Validate(mustUnmarshal(t, `{"children": [{"data": 1}]}`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// the misspelled property must be caught in the nested node, because
	// $dynamicRef resolves to the strict tree
	if err := sch.Validate(mustUnmarshal(t, `{"children": [{"daat": 1}]}`)); err == nil {
		t.Fatal("Validate() expected error for misspelled nested property")
	}
}

func TestRecursiveRef(t *testing.T) {
	c := jsonschema.NewCompiler()
	tree := mustUnmarshal(t, `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/tree",
		"$recursiveAnchor": true,
		"type": "object",
		"properties": {
			"data": true,
			"children": {
				"type": "array",
				"items": {"$recursiveRef": "#"}
			}
		}
	}`)
	strictTree := mustUnmarshal(t, `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/strict-tree",
		"$recursiveAnchor": true,
		"$ref": "tree",
		"unevaluatedProperties": false
	}`)
	if err := c.AddResource("https://example.com/tree", tree); err != nil {
		t.Fatalf("AddResource(tree) error = %v", err)
	}
	if err := c.AddResource("https://example.com/strict-tree", strictTree); err != nil {
		t.Fatalf("AddResource(strict-tree) error = %v", err)
	}
	sch, err := c.Compile("https://example.com/strict-tree")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := sch.Validate(mustUnmarshal(t, `{"children": [{"data": 1}]}`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `{"children": [{"daat": 1}]}`)); err == nil {
		t.Fatal("Validate() expected error for misspelled nested property")
	}
}

func TestDependentKeywords(t *testing.T) {
	sch := compileString(t, `{
		"dependentRequired": {"credit_card": ["billing_address"]},
		"dependentSchemas": {
			"name": {"properties": {"name": {"minLength": 2}}}
		}
	}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`{"credit_card": "1234", "billing_address": "x"}`, true},
		{`{"credit_card": "1234"}`, false},
		{`{"name": "ab"}`, true},
		{`{"name": "a"}`, false},
		{`{}`, true},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestDraft7Dependencies(t *testing.T) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	doc := mustUnmarshal(t, `{
		"dependencies": {
			"a": ["b"],
			"c": {"required": ["d"]}
		}
	}`)
	if err := c.AddResource("schema.json", doc); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	sch, err := c.Compile("schema.json")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		instance string
		valid    bool
	}{
		{`{"a": 1, "b": 2}`, true},
		{`{"a": 1}`, false},
		{`{"c": 1, "d": 2}`, true},
		{`{"c": 1}`, false},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestPropertyNames(t *testing.T) {
	sch := compileString(t, `{"propertyNames": {"maxLength": 3}}`)
	if err := sch.Validate(mustUnmarshal(t, `{"abc": 1}`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `{"abcd": 1}`)); err == nil {
		t.Fatal("Validate() expected error for long property name")
	}
}

func TestOneOf(t *testing.T) {
	sch := compileString(t, `{
		"oneOf": [
			{"type": "integer"},
			{"minimum": 2}
		]
	}`)

	tests := []struct {
		instance string
		valid    bool
	}{
		{`1`, true},
		{`2.5`, true},
		{`3`, false},
		{`1.5`, false},
	}
	for _, tt := range tests {
		err := sch.Validate(mustUnmarshal(t, tt.instance))
		if (err == nil) != tt.valid {
			t.Errorf("Validate(%s) error = %v, want valid %v", tt.instance, err, tt.valid)
		}
	}
}

func TestContentAssertions(t *testing.T) {
	c := jsonschema.NewCompiler()
	c.AssertContent()
	doc := mustUnmarshal(t, `{
		"contentEncoding": "base64",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object", "required": ["x"]}
	}`)
	if err := c.AddResource("schema.json", doc); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	sch, err := c.Compile("schema.json")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	// base64 of {"x":1}
	if err := sch.Validate(mustUnmarshal(t, `"eyJ4IjoxfQ=="`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// base64 of {"y":1}
	if err := sch.Validate(mustUnmarshal(t, `"eyJ5IjoxfQ=="`)); err == nil {
		t.Fatal("Validate() expected contentSchema error")
	}
	if err := sch.Validate(mustUnmarshal(t, `"not base64!"`)); err == nil {
		t.Fatal("Validate() expected contentEncoding error")
	}
}

func TestFormatAssertionByDraft(t *testing.T) {
	// draft-07 asserts format by default
	c := jsonschema.NewCompiler()
	doc := mustUnmarshal(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"format": "ipv4"
	}`)
	if err := c.AddResource("schema.json", doc); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	sch, err := c.Compile("schema.json")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `"not an ip"`)); err == nil {
		t.Fatal("Validate() expected format error under draft-07")
	}

	// 2020-12 treats format as annotation unless enabled
	c = jsonschema.NewCompiler()
	doc = mustUnmarshal(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "ipv4"
	}`)
	if err := c.AddResource("schema.json", doc); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	sch, err = c.Compile("schema.json")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `"not an ip"`)); err != nil {
		t.Fatalf("Validate() error = %v, format must be annotation only", err)
	}

	c = jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource("schema.json", doc); err != nil {
		t.Fatalf("AddResource() error = %v", err)
	}
	sch, err = c.Compile("schema.json")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `"not an ip"`)); err == nil {
		t.Fatal("Validate() expected format error with assertions enabled")
	}
}

func TestValidateDeterminism(t *testing.T) {
	sch := compileString(t, `{
		"type": "object",
		"required": ["a", "b"],
		"properties": {"a": {"type": "integer"}}
	}`)
	instance := mustUnmarshal(t, `{"a": "x"}`)

	first := sch.Validate(instance)
	second := sch.Validate(instance)
	if first == nil || second == nil {
		t.Fatal("Validate() expected errors")
	}
	if first.Error() != second.Error() {
		t.Fatalf("Validate() output differs between runs:\n%v\n%v", first, second)
	}
}
