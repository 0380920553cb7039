package jsonschema_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	jserrors "github.com/jacoelho/jsonschema/errors"
)

func TestFlagOutput(t *testing.T) {
	sch := compileString(t, `{"type": "string"}`)
	err := sch.Validate(mustUnmarshal(t, `1`))
	verr, ok := jserrors.AsValidationError(err)
	if !ok {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}
	if out := verr.FlagOutput(); out.Valid {
		t.Fatal("FlagOutput().Valid = true, want false")
	}
}

func TestBasicOutput(t *testing.T) {
	sch := compileString(t, `{
		"type": "object",
		"properties": {
			"a": {"$ref": "#/$defs/int"}
		},
		"$defs": {
			"int": {"type": "integer"}
		}
	}`)
	err := sch.Validate(mustUnmarshal(t, `{"a": "x"}`))
	verr, ok := jserrors.AsValidationError(err)
	if !ok {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}

	out := verr.BasicOutput()
	if out.Valid {
		t.Fatal("BasicOutput().Valid = true, want false")
	}
	if len(out.Errors) == 0 {
		t.Fatal("BasicOutput().Errors is empty")
	}

	var found bool
	for _, unit := range out.Errors {
		if unit.InstanceLocation == "/a" && strings.Contains(unit.KeywordLocation, "$ref") {
			found = true
			if unit.AbsoluteKeywordLocation == "" {
				t.Fatal("BasicOutput() unit inside $ref has no absoluteKeywordLocation")
			}
		}
	}
	if !found {
		t.Fatalf("BasicOutput() has no unit for /a through $ref: %+v", out.Errors)
	}

	if _, err := json.Marshal(out); err != nil {
		t.Fatalf("Marshal(BasicOutput()) error = %v", err)
	}
}

func TestDetailedOutput(t *testing.T) {
	sch := compileString(t, `{
		"allOf": [
			{"type": "object"},
			{"required": ["a"]}
		]
	}`)
	err := sch.Validate(mustUnmarshal(t, `{}`))
	verr, ok := jserrors.AsValidationError(err)
	if !ok {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}

	out := verr.DetailedOutput()
	if out.Valid {
		t.Fatal("DetailedOutput().Valid = true, want false")
	}
	if len(out.Errors) == 0 {
		t.Fatal("DetailedOutput().Errors is empty")
	}
	if _, err := json.Marshal(out); err != nil {
		t.Fatalf("Marshal(DetailedOutput()) error = %v", err)
	}
}

func TestErrorRendering(t *testing.T) {
	sch := compileString(t, `{"required": ["name"]}`)
	err := sch.Validate(mustUnmarshal(t, `{}`))
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "name") {
		t.Fatalf("Error() = %q, want mention of missing property", msg)
	}
}
