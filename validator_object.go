package jsonschema

import "github.com/jacoelho/jsonschema/errors"

func (r *validationRun) checkObject(obj map[string]any) {
	s := r.schema

	if s.MinProperties != nil && len(obj) < *s.MinProperties {
		r.report(&errors.MinPropertiesKind{Got: len(obj), Want: *s.MinProperties})
	}
	if s.MaxProperties != nil && len(obj) > *s.MaxProperties {
		r.report(&errors.MaxPropertiesKind{Got: len(obj), Want: *s.MaxProperties})
	}
	if len(s.Required) > 0 {
		if missing := r.missingKeys(obj, s.Required); missing != nil {
			r.report(&errors.RequiredKind{Missing: missing})
		}
	}
	if r.shortCircuit() {
		return
	}

	r.checkDependencies(obj)
	r.checkProperties(obj)
	if r.shortCircuit() {
		return
	}
	r.checkPropertyNames(obj)
	r.checkDependents(obj)
}

func (r *validationRun) checkDependencies(obj map[string]any) {
	for name, dep := range r.schema.Dependencies {
		if _, ok := obj[name]; !ok {
			continue
		}
		switch dep := dep.(type) {
		case []string:
			if missing := r.missingKeys(obj, dep); missing != nil {
				r.report(&errors.DependencyKind{Prop: name, Missing: missing})
			}
		case *Schema:
			r.record(r.applyInPlace(dep, "", false))
		}
	}
}

// checkProperties applies properties, patternProperties and
// additionalProperties to every member, settling each member covered by
// at least one of them.
func (r *validationRun) checkProperties(obj map[string]any) {
	s := r.schema

	var undeclared []string
	for name, value := range obj {
		if r.shortCircuit() {
			return
		}
		covered := false

		if sub, ok := s.Properties[name]; ok {
			covered = true
			r.record(r.applyToChild(sub, value, name))
		}
		for pattern, sub := range s.PatternProperties {
			if pattern.MatchString(name) {
				covered = true
				r.record(r.applyToChild(sub, value, name))
			}
		}
		if !covered && s.AdditionalProperties != nil {
			covered = true
			switch rest := s.AdditionalProperties.(type) {
			case bool:
				if !rest {
					undeclared = append(undeclared, name)
				}
			case *Schema:
				r.record(r.applyToChild(rest, value, name))
			}
		}

		if covered {
			r.pending.settleProperty(name)
		}
	}
	if len(undeclared) > 0 {
		r.report(&errors.AdditionalPropertiesKind{Properties: undeclared})
	}
}

func (r *validationRun) checkPropertyNames(obj map[string]any) {
	s := r.schema
	if s.PropertyNames == nil {
		return
	}
	for name := range obj {
		err := s.PropertyNames.validate(name, r.regexEngine)
		if err == nil {
			continue
		}
		wrapper := r.fail(&errors.PropertyNamesKind{Property: name})
		wrapper.SchemaURL = s.PropertyNames.Location
		if cause, ok := errors.AsValidationError(err); ok {
			wrapper.Causes = cause.Causes
		}
		r.record(wrapper)
	}
}

func (r *validationRun) checkDependents(obj map[string]any) {
	s := r.schema

	for name, sub := range s.DependentSchemas {
		if _, ok := obj[name]; ok {
			r.record(r.applyInPlace(sub, "", false))
		}
	}
	for name, required := range s.DependentRequired {
		if _, ok := obj[name]; ok {
			if missing := r.missingKeys(obj, required); missing != nil {
				r.report(&errors.DependentRequiredKind{Prop: name, Missing: missing})
			}
		}
	}
}
