package jsonschema

import (
	"unicode/utf8"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/num"
)

func (r *validationRun) checkString(str string) {
	s := r.schema

	if s.MinLength != nil || s.MaxLength != nil {
		length := utf8.RuneCountInString(str)
		if s.MinLength != nil && length < *s.MinLength {
			r.report(&errors.MinLengthKind{Got: length, Want: *s.MinLength})
		}
		if s.MaxLength != nil && length > *s.MaxLength {
			r.report(&errors.MaxLengthKind{Got: length, Want: *s.MaxLength})
		}
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		r.report(&errors.PatternKind{Got: str, Want: s.Pattern.String()})
	}
	r.checkContent(str)
}

// checkContent decodes the string per contentEncoding and checks the
// result against contentMediaType and contentSchema. Each stage runs
// only when the previous one succeeded.
func (r *validationRun) checkContent(str string) {
	s := r.schema
	if s.ContentEncoding == nil && s.ContentMediaType == nil {
		return
	}

	data := []byte(str)
	if s.ContentEncoding != nil {
		var err error
		data, err = s.ContentEncoding.Decode(str)
		if err != nil {
			r.report(&errors.ContentEncodingKind{Want: s.ContentEncoding.Name, Err: err})
			return
		}
	}
	if s.ContentMediaType == nil {
		return
	}

	if s.ContentSchema == nil {
		if err := s.ContentMediaType.Validate(data); err != nil {
			r.report(&errors.ContentMediaTypeKind{Got: data, Want: s.ContentMediaType.Name, Err: err})
		}
		return
	}
	decoded, err := s.ContentMediaType.UnmarshalJSON(data)
	if err != nil {
		r.report(&errors.ContentMediaTypeKind{Got: data, Want: s.ContentMediaType.Name, Err: err})
		return
	}
	if err := s.ContentSchema.validate(decoded, r.regexEngine); err != nil {
		wrapper := r.fail(&errors.ContentSchemaKind{})
		if cause, ok := errors.AsValidationError(err); ok {
			wrapper.Causes = cause.Causes
		}
		r.record(wrapper)
	}
}

func (r *validationRun) checkNumber(v any) {
	s := r.schema
	if s.Minimum == nil && s.Maximum == nil &&
		s.ExclusiveMinimum == nil && s.ExclusiveMaximum == nil && s.MultipleOf == nil {
		return
	}
	val, ok := num.Rat(v)
	if !ok {
		return
	}

	if s.Minimum != nil && val.Cmp(s.Minimum) < 0 {
		r.report(&errors.MinimumKind{Got: val, Want: s.Minimum})
	}
	if s.Maximum != nil && val.Cmp(s.Maximum) > 0 {
		r.report(&errors.MaximumKind{Got: val, Want: s.Maximum})
	}
	if s.ExclusiveMinimum != nil && val.Cmp(s.ExclusiveMinimum) <= 0 {
		r.report(&errors.ExclusiveMinimumKind{Got: val, Want: s.ExclusiveMinimum})
	}
	if s.ExclusiveMaximum != nil && val.Cmp(s.ExclusiveMaximum) >= 0 {
		r.report(&errors.ExclusiveMaximumKind{Got: val, Want: s.ExclusiveMaximum})
	}
	if s.MultipleOf != nil && !num.IsMultipleOf(val, s.MultipleOf) {
		r.report(&errors.MultipleOfKind{Got: val, Want: s.MultipleOf})
	}
}
