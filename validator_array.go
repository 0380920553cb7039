package jsonschema

import (
	"strconv"

	"github.com/jacoelho/jsonschema/errors"
)

func (r *validationRun) checkArray(arr []any) {
	s := r.schema

	if s.MinItems != nil && len(arr) < *s.MinItems {
		r.report(&errors.MinItemsKind{Got: len(arr), Want: *s.MinItems})
	}
	if s.MaxItems != nil && len(arr) > *s.MaxItems {
		r.report(&errors.MaxItemsKind{Got: len(arr), Want: *s.MaxItems})
	}
	if s.UniqueItems && len(arr) > 1 {
		if i, j := duplicates(arr); i != -1 {
			r.report(&errors.UniqueItemsKind{Duplicates: [2]int{i, j}})
		}
	}

	if s.DraftVersion < 2020 {
		r.checkTupleItems(arr)
	} else {
		r.checkPrefixItems(arr)
	}
	if s.Contains != nil {
		r.checkContains(arr)
	}
}

// checkTupleItems handles the pre-2020 items keyword, which covers
// either every item or a leading tuple with additionalItems for the
// rest.
func (r *validationRun) checkTupleItems(arr []any) {
	s := r.schema

	covered := 0
	switch items := s.Items.(type) {
	case *Schema:
		for i, item := range arr {
			r.record(r.applyToChild(items, item, strconv.Itoa(i)))
		}
		covered = len(arr)
	case []*Schema:
		covered = min(len(arr), len(items))
		for i, item := range arr[:covered] {
			r.record(r.applyToChild(items[i], item, strconv.Itoa(i)))
		}
	}

	switch rest := s.AdditionalItems.(type) {
	case bool:
		if !rest && covered != len(arr) {
			r.report(&errors.AdditionalItemsKind{Count: len(arr) - covered})
		}
	case *Schema:
		for i, item := range arr[covered:] {
			r.record(r.applyToChild(rest, item, strconv.Itoa(covered+i)))
		}
	}
}

func (r *validationRun) checkPrefixItems(arr []any) {
	s := r.schema

	covered := min(len(s.PrefixItems), len(arr))
	for i, item := range arr[:covered] {
		r.record(r.applyToChild(s.PrefixItems[i], item, strconv.Itoa(i)))
	}
	if s.RestItems == nil {
		return
	}
	for i, item := range arr[covered:] {
		r.record(r.applyToChild(s.RestItems, item, strconv.Itoa(covered+i)))
	}
}

func (r *validationRun) checkContains(arr []any) {
	s := r.schema

	var matched []int
	var misses []*errors.ValidationError
	for i, item := range arr {
		if err := r.applyToChild(s.Contains, item, strconv.Itoa(i)); err != nil {
			misses = append(misses, err.(*errors.ValidationError))
			continue
		}
		matched = append(matched, i)
		if s.DraftVersion >= 2020 {
			r.pending.settleItem(i)
		}
	}

	if s.MinContains != nil {
		if len(matched) < *s.MinContains {
			r.reportGroup(&errors.MinContainsKind{Got: matched, Want: *s.MinContains}, misses)
		}
	} else if len(matched) == 0 {
		r.reportGroup(&errors.ContainsKind{}, misses)
	}
	if s.MaxContains != nil && len(matched) > *s.MaxContains {
		r.report(&errors.MaxContainsKind{Got: matched, Want: *s.MaxContains})
	}
}
