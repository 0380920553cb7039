package jsonschema

import (
	"strconv"

	"github.com/jacoelho/jsonschema/errors"
)

func (r *validationRun) checkApplicators() {
	r.checkNot()
	r.checkAllOf()
	r.checkAnyOf()
	r.checkOneOf()
	r.checkConditional()
}

func (r *validationRun) checkNot() {
	if r.schema.Not == nil {
		return
	}
	if r.applyInPlace(r.schema.Not, "", true) == nil {
		r.report(&errors.NotKind{})
	}
}

func (r *validationRun) checkAllOf() {
	if len(r.schema.AllOf) == 0 {
		return
	}
	var causes []*errors.ValidationError
	for _, sub := range r.schema.AllOf {
		if err := r.applyInPlace(sub, "", false); err != nil {
			causes = append(causes, err.(*errors.ValidationError))
			if r.quick {
				break
			}
		}
	}
	if len(causes) > 0 {
		r.reportGroup(&errors.AllOfKind{}, causes)
	}
}

func (r *validationRun) checkAnyOf() {
	if len(r.schema.AnyOf) == 0 {
		return
	}
	matched := false
	var causes []*errors.ValidationError
	for _, sub := range r.schema.AnyOf {
		if err := r.applyInPlace(sub, "", false); err != nil {
			causes = append(causes, err.(*errors.ValidationError))
			continue
		}
		matched = true
		// later branches may still settle pending properties and items
		if r.pending.settled() {
			break
		}
	}
	if !matched {
		r.reportGroup(&errors.AnyOfKind{}, causes)
	}
}

func (r *validationRun) checkOneOf() {
	if len(r.schema.OneOf) == 0 {
		return
	}
	matched := -1
	var causes []*errors.ValidationError
	for i, sub := range r.schema.OneOf {
		if err := r.applyInPlace(sub, "", matched != -1); err != nil {
			if matched == -1 {
				causes = append(causes, err.(*errors.ValidationError))
			}
			continue
		}
		if matched == -1 {
			matched = i
			continue
		}
		r.report(&errors.OneOfKind{Subschemas: []int{matched, i}})
		return
	}
	if matched == -1 {
		r.reportGroup(&errors.OneOfKind{}, causes)
	}
}

func (r *validationRun) checkConditional() {
	s := r.schema
	if s.If == nil {
		return
	}
	if r.applyInPlace(s.If, "", true) == nil {
		if s.Then != nil {
			r.record(r.applyInPlace(s.Then, "", false))
		}
	} else if s.Else != nil {
		r.record(r.applyInPlace(s.Else, "", false))
	}
}

// checkUnevaluated applies unevaluatedProperties and unevaluatedItems
// to whatever no other keyword in the dynamic scope has settled.
func (r *validationRun) checkUnevaluated() {
	s := r.schema

	if obj, ok := r.value.(map[string]any); ok && s.UnevaluatedProperties != nil {
		for name := range r.pending.properties {
			if value, ok := obj[name]; ok {
				r.record(r.applyToChild(s.UnevaluatedProperties, value, name))
			}
		}
		r.pending.properties = nil
	}
	if arr, ok := r.value.([]any); ok && s.UnevaluatedItems != nil {
		for i := range r.pending.items {
			r.record(r.applyToChild(s.UnevaluatedItems, arr[i], strconv.Itoa(i)))
		}
		r.pending.items = nil
	}
}
