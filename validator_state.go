package jsonschema

// dynamicFrame is one step of the dynamic validation path. Frames link
// from the innermost run back to the root.
type dynamicFrame struct {
	schema *Schema

	// refKeyword is the reference keyword that jumped here, or "" when
	// the schema is lexically nested in its parent.
	refKeyword string

	// valueID identifies the value under validation. Two frames
	// validating the same value share an id.
	valueID int

	enclosing *dynamicFrame
}

func (f *dynamicFrame) descend(sub *Schema, refKeyword string, valueID int) *dynamicFrame {
	return &dynamicFrame{schema: sub, refKeyword: refKeyword, valueID: valueID, enclosing: f}
}

// repeated reports the enclosing frame, if any, already validating this
// value against this schema.
func (f *dynamicFrame) repeated() *dynamicFrame {
	for prev := f.enclosing; prev != nil && prev.valueID == f.valueID; prev = prev.enclosing {
		if prev.schema == f.schema {
			return prev
		}
	}
	return nil
}

// keywordLocation renders the dynamic path as a json pointer, with
// reference jumps spelled as their keyword.
func (f *dynamicFrame) keywordLocation() string {
	if f.enclosing == nil {
		return ""
	}
	prefix := f.enclosing.keywordLocation()
	if f.refKeyword != "" {
		return prefix + "/" + escape(f.refKeyword)
	}
	return prefix + f.schema.Location[len(f.enclosing.schema.Location):]
}

// evaluationSet tracks the properties and items no applied keyword has
// covered yet, for unevaluatedProperties and unevaluatedItems.
type evaluationSet struct {
	properties map[string]struct{}
	items      map[int]struct{}
}

// pendingFor seeds the set for validating v against s. Tracking is
// skipped when neither s nor the caller can consume the result.
func pendingFor(v any, s *Schema, demanded bool) *evaluationSet {
	set := &evaluationSet{}
	switch v := v.(type) {
	case map[string]any:
		if s.evaluatesAllProps || (!demanded && s.UnevaluatedProperties == nil) {
			return set
		}
		set.properties = make(map[string]struct{}, len(v))
		for name := range v {
			set.properties[name] = struct{}{}
		}
	case []any:
		if s.evaluatesAllItems || (!demanded && s.UnevaluatedItems == nil) || s.evaluatedPrefix >= len(v) {
			return set
		}
		set.items = make(map[int]struct{}, len(v)-s.evaluatedPrefix)
		for i := s.evaluatedPrefix; i < len(v); i++ {
			set.items[i] = struct{}{}
		}
	}
	return set
}

func (set *evaluationSet) settleProperty(name string) {
	delete(set.properties, name)
}

func (set *evaluationSet) settleItem(i int) {
	delete(set.items, i)
}

// intersect keeps only the entries both sets still consider pending.
func (set *evaluationSet) intersect(other *evaluationSet) {
	for name := range set.properties {
		if _, ok := other.properties[name]; !ok {
			set.settleProperty(name)
		}
	}
	for i := range set.items {
		if _, ok := other.items[i]; !ok {
			set.settleItem(i)
		}
	}
}

func (set *evaluationSet) settled() bool {
	return len(set.properties) == 0 && len(set.items) == 0
}
