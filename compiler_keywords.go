package jsonschema

import (
	"math/big"
	"strconv"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/num"
)

// keywordCompiler compiles the keywords of one schema object, grouped
// by the vocabulary they belong to. Keywords from drafts newer than the
// document's draft are left untouched.
type keywordCompiler struct {
	compiler *Compiler
	doc      map[string]any
	addr     urlPtr
	root     *root
	res      *resource
	work     *worklist
}

func (kc *keywordCompiler) compile(s *Schema) error {
	if err := kc.compileIdentity(s); err != nil {
		return err
	}
	if kc.hasVocab("core") {
		ref, err := kc.subschemaRef("$ref")
		if err != nil {
			return err
		}
		s.Ref = ref
		if s.Ref != nil && s.DraftVersion < 2019 {
			// keywords beside $ref are ignored in earlier drafts
			return nil
		}
		if err := kc.compileReferences(s); err != nil {
			return err
		}
	}
	if kc.hasVocab("applicator") {
		if err := kc.compileApplicators(s); err != nil {
			return err
		}
	}
	if kc.hasVocab("validation") {
		if err := kc.compileValidation(s); err != nil {
			return err
		}
	}
	kc.compileFormat(s)
	kc.compileContent(s)
	kc.compileUnevaluated(s)
	kc.compileAnnotations(s)
	return nil
}

func (kc *keywordCompiler) compileIdentity(s *Schema) error {
	s.ID = kc.draft().getID(kc.doc)
	if s.DraftVersion >= 2019 {
		s.Anchor = kc.stringOrEmpty("$anchor")
		return nil
	}
	// earlier drafts spell the anchor as a fragment on id
	if id := kc.stringOrEmpty(kc.draft().id); id != "" {
		if _, frag := split(id); frag != "" {
			name, err := decode(frag)
			if err != nil {
				return &errors.ParseAnchorError{URL: s.Location}
			}
			s.Anchor = name
		}
	}
	return nil
}

func (kc *keywordCompiler) compileReferences(s *Schema) error {
	if s.DraftVersion >= 2019 {
		ref, err := kc.subschemaRef("$recursiveRef")
		if err != nil {
			return err
		}
		s.RecursiveRef = ref
		s.RecursiveAnchor = kc.boolOrFalse("$recursiveAnchor")
	}
	if s.DraftVersion >= 2020 {
		target, err := kc.subschemaRef("$dynamicRef")
		if err != nil {
			return err
		}
		if target != nil {
			raw := kc.optionalString("$dynamicRef")
			_, frag, err := splitFragment(*raw)
			if err != nil {
				return err
			}
			var name string
			if anchor, ok := frag.convert().(anchor); ok {
				name = string(anchor)
			}
			s.DynamicRef = &DynamicRef{target, name}
		}
		s.DynamicAnchor = kc.stringOrEmpty("$dynamicAnchor")
	}
	return nil
}

func (kc *keywordCompiler) compileApplicators(s *Schema) error {
	s.Not = kc.subschema("not")
	s.AllOf = kc.subschemaList("allOf")
	s.AnyOf = kc.subschemaList("anyOf")
	s.OneOf = kc.subschemaList("oneOf")

	s.Properties = kc.subschemaMap("properties")
	if err := kc.compilePatternProperties(s); err != nil {
		return err
	}
	s.AdditionalProperties = kc.boolOrSubschema("additionalProperties")
	kc.compileDependencies(s)

	if s.DraftVersion < 2020 {
		kc.compileTupleItems(s)
	} else {
		s.PrefixItems = kc.subschemaList("prefixItems")
		s.RestItems = kc.subschema("items")
	}

	if s.DraftVersion >= 6 {
		s.Contains = kc.subschema("contains")
		s.PropertyNames = kc.subschema("propertyNames")
	}
	if s.DraftVersion >= 7 {
		kc.compileConditional(s)
	}
	if s.DraftVersion >= 2019 {
		s.DependentSchemas = kc.subschemaMap("dependentSchemas")
	}
	return nil
}

func (kc *keywordCompiler) compilePatternProperties(s *Schema) error {
	patterns := kc.subschemaMap("patternProperties")
	if patterns == nil {
		return nil
	}
	s.PatternProperties = map[Regexp]*Schema{}
	for pattern, sub := range patterns {
		re, err := kc.compiler.regexpEngine(pattern)
		if err != nil {
			return &errors.InvalidRegexError{
				URL: kc.addr.format("patternProperties"), Regex: pattern, Err: err,
			}
		}
		s.PatternProperties[re] = sub
	}
	return nil
}

func (kc *keywordCompiler) compileDependencies(s *Schema) {
	deps := kc.objectValue("dependencies")
	if deps == nil {
		return
	}
	s.Dependencies = map[string]any{}
	for name, dep := range deps {
		if arr, ok := dep.([]any); ok {
			s.Dependencies[name] = stringValues(arr)
		} else {
			s.Dependencies[name] = kc.subschemaAt(kc.addr.ptr.append2("dependencies", name))
		}
	}
}

// compileTupleItems handles the two shapes the items keyword had before
// 2020-12: a single schema for every item, or a tuple of schemas with
// additionalItems covering the rest.
func (kc *keywordCompiler) compileTupleItems(s *Schema) {
	items, ok := kc.doc["items"]
	if !ok {
		return
	}
	if _, ok := items.([]any); ok {
		s.Items = kc.subschemaList("items")
		s.AdditionalItems = kc.boolOrSubschema("additionalItems")
		return
	}
	s.Items = kc.subschema("items")
}

func (kc *keywordCompiler) compileConditional(s *Schema) {
	s.If = kc.subschema("if")
	if s.If == nil {
		return
	}
	cond := kc.optionalBool("if")
	if cond == nil || *cond {
		s.Then = kc.subschema("then")
	}
	if cond == nil || !*cond {
		s.Else = kc.subschema("else")
	}
}

func (kc *keywordCompiler) compileValidation(s *Schema) error {
	if t, ok := kc.doc["type"]; ok {
		s.Types = typesFrom(t)
	}
	if arr := kc.arrayValue("enum"); arr != nil {
		s.Enum = enumOf(arr)
	}
	if s.DraftVersion >= 6 {
		if v, ok := kc.doc["const"]; ok {
			s.Const = &v
		}
	}

	kc.compileNumberBounds(s)

	s.MinLength = kc.optionalInt("minLength")
	s.MaxLength = kc.optionalInt("maxLength")
	if pattern := kc.optionalString("pattern"); pattern != nil {
		re, err := kc.compiler.regexpEngine(*pattern)
		if err != nil {
			return &errors.InvalidRegexError{
				URL: kc.addr.format("pattern"), Regex: *pattern, Err: err,
			}
		}
		s.Pattern = re
	}

	s.MinItems = kc.optionalInt("minItems")
	s.MaxItems = kc.optionalInt("maxItems")
	s.UniqueItems = kc.boolOrFalse("uniqueItems")

	s.MinProperties = kc.optionalInt("minProperties")
	s.MaxProperties = kc.optionalInt("maxProperties")
	if arr := kc.arrayValue("required"); arr != nil {
		s.Required = stringValues(arr)
	}

	if s.DraftVersion >= 2019 {
		if s.Contains != nil {
			s.MinContains = kc.optionalInt("minContains")
			s.MaxContains = kc.optionalInt("maxContains")
		}
		if deps := kc.objectValue("dependentRequired"); deps != nil {
			s.DependentRequired = map[string][]string{}
			for name, dep := range deps {
				if arr, ok := dep.([]any); ok {
					s.DependentRequired[name] = stringValues(arr)
				}
			}
		}
	}
	return nil
}

func (kc *keywordCompiler) compileNumberBounds(s *Schema) {
	s.MultipleOf = kc.optionalNumber("multipleOf")
	s.Minimum = kc.optionalNumber("minimum")
	s.Maximum = kc.optionalNumber("maximum")
	if s.DraftVersion == 4 {
		// draft 4 spells exclusive bounds as boolean switches
		if kc.boolOrFalse("exclusiveMinimum") {
			s.ExclusiveMinimum, s.Minimum = s.Minimum, nil
		}
		if kc.boolOrFalse("exclusiveMaximum") {
			s.ExclusiveMaximum, s.Maximum = s.Maximum, nil
		}
		return
	}
	s.ExclusiveMinimum = kc.optionalNumber("exclusiveMinimum")
	s.ExclusiveMaximum = kc.optionalNumber("exclusiveMaximum")
}

func (kc *keywordCompiler) compileFormat(s *Schema) {
	if !kc.assertsFormat(s.DraftVersion) {
		return
	}
	name := kc.optionalString("format")
	if name == nil {
		return
	}
	if *name == "regex" {
		s.Format = &Format{Name: "regex", Validate: kc.compiler.regexpEngine.validate}
		return
	}
	s.Format = kc.compiler.formats[*name]
	if s.Format == nil {
		s.Format = formats[*name]
	}
}

func (kc *keywordCompiler) compileContent(s *Schema) {
	if !kc.compiler.assertContent || s.DraftVersion < 7 {
		return
	}
	if name := kc.optionalString("contentEncoding"); name != nil {
		s.ContentEncoding = kc.compiler.decoders[*name]
		if s.ContentEncoding == nil {
			s.ContentEncoding = decoders[*name]
		}
	}
	if name := kc.optionalString("contentMediaType"); name != nil {
		s.ContentMediaType = kc.compiler.mediaTypes[*name]
		if s.ContentMediaType == nil {
			s.ContentMediaType = mediaTypes[*name]
		}
	}
	if s.DraftVersion >= 2019 && s.ContentMediaType != nil && s.ContentMediaType.UnmarshalJSON != nil {
		s.ContentSchema = kc.subschema("contentSchema")
	}
}

func (kc *keywordCompiler) compileUnevaluated(s *Schema) {
	if s.DraftVersion < 2019 {
		return
	}
	vocab := "unevaluated"
	if s.DraftVersion == 2019 {
		vocab = "applicator"
	}
	if !kc.hasVocab(vocab) {
		return
	}
	s.UnevaluatedProperties = kc.subschema("unevaluatedProperties")
	s.UnevaluatedItems = kc.subschema("unevaluatedItems")
}

func (kc *keywordCompiler) compileAnnotations(s *Schema) {
	s.Title = kc.stringOrEmpty("title")
	s.Description = kc.stringOrEmpty("description")
	if v, ok := kc.doc["default"]; ok {
		s.Default = &v
	}
	if s.DraftVersion >= 7 {
		s.Comment = kc.stringOrEmpty("$comment")
		s.ReadOnly = kc.boolOrFalse("readOnly")
		s.WriteOnly = kc.boolOrFalse("writeOnly")
		if arr, ok := kc.doc["examples"].([]any); ok {
			s.Examples = arr
		}
	}
	if s.DraftVersion >= 2019 {
		s.Deprecated = kc.boolOrFalse("deprecated")
	}
}

// subschema helpers --

func (kc *keywordCompiler) subschemaAt(ptr jsonPointer) *Schema {
	return kc.compiler.schedule(kc.work, urlPtr{kc.addr.url, ptr})
}

func (kc *keywordCompiler) subschema(keyword string) *Schema {
	if _, ok := kc.doc[keyword]; !ok {
		return nil
	}
	return kc.subschemaAt(kc.addr.ptr.append(keyword))
}

func (kc *keywordCompiler) subschemaList(keyword string) []*Schema {
	arr := kc.arrayValue(keyword)
	if arr == nil {
		return nil
	}
	subs := make([]*Schema, len(arr))
	for i := range arr {
		subs[i] = kc.subschemaAt(kc.addr.ptr.append2(keyword, strconv.Itoa(i)))
	}
	return subs
}

func (kc *keywordCompiler) subschemaMap(keyword string) map[string]*Schema {
	obj := kc.objectValue(keyword)
	if obj == nil {
		return nil
	}
	subs := make(map[string]*Schema)
	for name := range obj {
		subs[name] = kc.subschemaAt(kc.addr.ptr.append2(keyword, name))
	}
	return subs
}

func (kc *keywordCompiler) boolOrSubschema(keyword string) any {
	if b := kc.optionalBool(keyword); b != nil {
		return *b
	}
	if sub := kc.subschema(keyword); sub != nil {
		return sub
	}
	return nil
}

// subschemaRef resolves a reference keyword against the enclosing
// resource and schedules its target. References into documents this
// compiler has not seen yet load them through the roots.
func (kc *keywordCompiler) subschemaRef(keyword string) (*Schema, error) {
	ref := kc.optionalString(keyword)
	if ref == nil {
		return nil, nil
	}
	uf, err := kc.res.id.join(*ref)
	if err != nil {
		return nil, err
	}
	local, err := kc.root.resolve(*uf)
	if err != nil {
		return nil, err
	}
	if local != nil {
		return kc.subschemaAt(local.ptr), nil
	}
	addr, err := kc.compiler.roots.resolveFragment(*uf)
	if err != nil {
		return nil, err
	}
	return kc.compiler.schedule(kc.work, addr), nil
}

// --

func (kc *keywordCompiler) draft() *Draft {
	return kc.root.draft()
}

func (kc *keywordCompiler) hasVocab(name string) bool {
	return kc.root.dialect.hasVocab(name)
}

func (kc *keywordCompiler) assertsFormat(draftVersion int) bool {
	switch {
	case kc.compiler.assertFormat, draftVersion < 2019:
		return true
	case draftVersion == 2019:
		return kc.hasVocab("format")
	default:
		return kc.hasVocab("format-assertion")
	}
}

// value helpers --

func (kc *keywordCompiler) optionalBool(keyword string) *bool {
	if b, ok := kc.doc[keyword].(bool); ok {
		return &b
	}
	return nil
}

func (kc *keywordCompiler) boolOrFalse(keyword string) bool {
	b, ok := kc.doc[keyword].(bool)
	return ok && b
}

func (kc *keywordCompiler) optionalString(keyword string) *string {
	if s, ok := kc.doc[keyword].(string); ok {
		return &s
	}
	return nil
}

func (kc *keywordCompiler) stringOrEmpty(keyword string) string {
	s, _ := kc.doc[keyword].(string)
	return s
}

func (kc *keywordCompiler) optionalNumber(keyword string) *big.Rat {
	v, ok := kc.doc[keyword]
	if !ok {
		return nil
	}
	if r, ok := num.Rat(v); ok {
		return r
	}
	return nil
}

func (kc *keywordCompiler) optionalInt(keyword string) *int {
	if r := kc.optionalNumber(keyword); r != nil && r.IsInt() {
		n := int(r.Num().Int64())
		return &n
	}
	return nil
}

func (kc *keywordCompiler) objectValue(keyword string) map[string]any {
	obj, _ := kc.doc[keyword].(map[string]any)
	return obj
}

func (kc *keywordCompiler) arrayValue(keyword string) []any {
	arr, _ := kc.doc[keyword].([]any)
	return arr
}

func stringValues(arr []any) []string {
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
