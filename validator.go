package jsonschema

import (
	"strings"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/num"
)

// Validate checks v against the schema. Instances must be decoded into
// any; use [UnmarshalJSON] to preserve number precision. A non-nil
// result is always a [*errors.ValidationError].
func (sch *Schema) Validate(v any) error {
	return sch.validate(v, nil)
}

// validate runs a full validation. engine, if non-nil, overrides the
// regexp engine used by the regex format.
func (sch *Schema) validate(v any, engine RegexpEngine) error {
	run := validationRun{
		value:       v,
		schema:      sch,
		frame:       &dynamicFrame{schema: sch},
		pending:     pendingFor(v, sch, false),
		regexEngine: engine,
	}
	_, err := run.run()
	if err == nil {
		return nil
	}
	cause := err.(*errors.ValidationError)
	var causes []*errors.ValidationError
	if _, ok := cause.Kind.(*errors.GroupKind); ok {
		causes = cause.Causes
	} else {
		causes = []*errors.ValidationError{cause}
	}
	return &errors.ValidationError{
		SchemaURL: sch.Location,
		Kind:      &errors.SchemaKind{Location: sch.Location},
		Causes:    causes,
	}
}

// validationRun validates one value against one schema. Descending into
// a child value or applying an in-place subschema starts a fresh run;
// the frame chain links the runs into the dynamic scope.
type validationRun struct {
	value   any
	path    []string
	schema  *Schema
	frame   *dynamicFrame
	pending *evaluationSet

	failures []*errors.ValidationError

	// quick is set when the caller only needs valid or not, never the
	// error details. The subschemas of not and if, and the oneOf branches
	// after the first match, run this way.
	quick bool

	regexEngine RegexpEngine
}

func (r *validationRun) run() (*evaluationSet, error) {
	s := r.schema

	if s.Bool != nil {
		if *s.Bool {
			return r.pending, nil
		}
		return nil, r.fail(&errors.FalseSchemaKind{})
	}

	if prev := r.frame.repeated(); prev != nil {
		return nil, r.fail(&errors.RefCycleKind{
			URL:              s.Location,
			KeywordLocation1: r.frame.keywordLocation(),
			KeywordLocation2: prev.keywordLocation(),
		})
	}

	kind := kindOf(r.value)
	if kind == kindInvalid {
		return nil, r.fail(&errors.InvalidJSONValueKind{Value: r.value})
	}
	if err := r.checkShape(kind); err != nil {
		return nil, err
	}

	if s.Ref != nil {
		err := r.followRef(s.Ref, "$ref")
		if s.DraftVersion < 2019 {
			// $ref siblings are ignored
			return r.pending, err
		}
		r.record(err)
	}

	switch v := r.value.(type) {
	case map[string]any:
		r.checkObject(v)
	case []any:
		r.checkArray(v)
	case string:
		r.checkString(v)
	default:
		if kind == kindNumber {
			r.checkNumber(r.value)
		}
	}

	if !r.shortCircuit() {
		r.applyDynamicRefs()
		r.checkApplicators()
		r.checkUnevaluated()
	}
	return r.conclude()
}

// checkShape applies the keywords that constrain the value as a whole.
// The first violation ends the run.
func (r *validationRun) checkShape(kind valueKind) error {
	s := r.schema

	if s.Types != nil && !s.Types.IsEmpty() {
		ok := s.Types.contains(kind) ||
			(kind == kindNumber && s.Types.contains(kindInteger) && num.IsInteger(r.value))
		if !ok {
			return r.fail(&errors.TypeKind{Got: kind.String(), Want: s.Types.ToStrings()})
		}
	}
	if s.Const != nil && !equals(r.value, *s.Const) {
		return r.fail(&errors.ConstKind{Got: r.value, Want: *s.Const})
	}
	if s.Enum != nil && !s.Enum.matches(r.value, kind) {
		return r.fail(&errors.EnumKind{Got: r.value, Want: s.Enum.Values})
	}
	if s.Format != nil {
		check := s.Format.Validate
		if s.Format.Name == "regex" && r.regexEngine != nil {
			check = r.regexEngine.validate
		}
		if err := check(r.value); err != nil {
			return r.fail(&errors.FormatKind{Got: r.value, Want: s.Format.Name, Err: err})
		}
	}
	return nil
}

func (r *validationRun) conclude() (*evaluationSet, error) {
	switch len(r.failures) {
	case 0:
		return r.pending, nil
	case 1:
		return nil, r.failures[0]
	default:
		group := r.fail(&errors.GroupKind{})
		group.Causes = r.failures
		return nil, group
	}
}

// applyInPlace validates the current value against sub. Settled
// properties and items propagate back to the caller on success only.
func (r *validationRun) applyInPlace(sub *Schema, viaKeyword string, quick bool) error {
	branch := validationRun{
		value:       r.value,
		path:        r.path,
		schema:      sub,
		frame:       r.frame.descend(sub, viaKeyword, r.frame.valueID),
		pending:     pendingFor(r.value, sub, !r.pending.settled()),
		quick:       r.quick || quick,
		regexEngine: r.regexEngine,
	}
	settled, err := branch.run()
	if err == nil {
		r.pending.intersect(settled)
	}
	return err
}

// applyToChild validates the child value at token against sub.
func (r *validationRun) applyToChild(sub *Schema, child any, token string) error {
	branch := validationRun{
		value:       child,
		path:        append(r.path, token),
		schema:      sub,
		frame:       r.frame.descend(sub, "", r.frame.valueID+1),
		pending:     pendingFor(child, sub, false),
		quick:       r.quick,
		regexEngine: r.regexEngine,
	}
	_, err := branch.run()
	return err
}

// failure bookkeeping --

func (r *validationRun) fail(kind errors.Kind) *errors.ValidationError {
	if r.quick {
		return &errors.ValidationError{}
	}
	suffix := joinPointer("", kind.KeywordPath())
	return &errors.ValidationError{
		SchemaURL:               r.schema.Location,
		KeywordLocation:         r.frame.keywordLocation() + suffix,
		AbsoluteKeywordLocation: r.schema.Location + suffix,
		InstanceLocation:        joinPointer("", r.path),
		Kind:                    kind,
	}
}

func (r *validationRun) report(kind errors.Kind) {
	r.failures = append(r.failures, r.fail(kind))
}

func (r *validationRun) reportGroup(kind errors.Kind, causes []*errors.ValidationError) {
	err := r.fail(kind)
	err.Causes = causes
	r.failures = append(r.failures, err)
}

func (r *validationRun) record(err error) {
	if err != nil {
		r.failures = append(r.failures, err.(*errors.ValidationError))
	}
}

func (r *validationRun) shortCircuit() bool {
	return r.quick && len(r.failures) > 0
}

// missingKeys reports the keys of names absent from obj, or nil when
// all are present. A quick run stops at the first absence.
func (r *validationRun) missingKeys(obj map[string]any, names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := obj[name]; !ok {
			if r.quick {
				return []string{}
			}
			missing = append(missing, name)
		}
	}
	return missing
}

func joinPointer(base string, tokens []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(escape(tok))
	}
	return b.String()
}
