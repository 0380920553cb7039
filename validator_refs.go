package jsonschema

import "github.com/jacoelho/jsonschema/errors"

// followRef validates the current value against a reference target,
// wrapping any failure in the reference keyword that jumped there.
func (r *validationRun) followRef(target *Schema, keyword string) error {
	err := r.applyInPlace(target, keyword, false)
	if err == nil {
		return nil
	}
	wrapper := r.fail(&errors.ReferenceKind{Keyword: keyword, URL: target.Location})
	cause := err.(*errors.ValidationError)
	if _, ok := cause.Kind.(*errors.GroupKind); ok {
		wrapper.Causes = cause.Causes
	} else {
		wrapper.Causes = []*errors.ValidationError{cause}
	}
	return wrapper
}

// applyDynamicRefs resolves and follows $recursiveRef and $dynamicRef,
// whose targets depend on the dynamic scope.
func (r *validationRun) applyDynamicRefs() {
	if target := r.schema.RecursiveRef; target != nil {
		if target.RecursiveAnchor {
			target = r.outermostRecursiveAnchor(target)
		}
		r.record(r.followRef(target, "$recursiveRef"))
	}
	if dref := r.schema.DynamicRef; dref != nil {
		target := dref.Ref
		if dref.Anchor != "" && target.DynamicAnchor == dref.Anchor {
			// dynamic only when the first target itself declares the anchor
			target = r.outermostDynamicAnchor(dref.Anchor, target)
		}
		r.record(r.followRef(target, "$dynamicRef"))
	}
}

// outermostRecursiveAnchor walks the dynamic scope for the outermost
// schema whose resource carries $recursiveAnchor.
func (r *validationRun) outermostRecursiveAnchor(fallback *Schema) *Schema {
	target := fallback
	for f := r.frame; f != nil; f = f.enclosing {
		if f.schema.resource.RecursiveAnchor {
			target = f.schema
		}
	}
	return target
}

// outermostDynamicAnchor walks the dynamic scope for the outermost
// resource declaring $dynamicAnchor name.
func (r *validationRun) outermostDynamicAnchor(name string, fallback *Schema) *Schema {
	target := fallback
	for f := r.frame; f != nil; f = f.enclosing {
		if sub, ok := f.schema.resource.dynamicAnchors[name]; ok {
			target = sub
		}
	}
	return target
}
