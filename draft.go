package jsonschema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonschema/errors"
)

type position uint

const (
	posSelf position = 1 << iota
	posProp
	posItem
)

// Draft is a supported revision of the JSON Schema specification.
type Draft struct {
	version       int
	url           string
	sch           *Schema
	id            string              // property name used to represent id
	subschemas    map[string]position // locations of subschemas
	vocabPrefix   string              // prefix used for vocabulary
	allVocabs     map[string]*Schema  // names of supported vocabs with their schemas
	defaultVocabs []string            // names of default vocabs
}

// String returns the specification url.
func (d *Draft) String() string { return d.url }

// Version returns the draft revision number: 4, 6, 7, 2019 or 2020.
func (d *Draft) Version() int { return d.version }

var (
	Draft4 = &Draft{
		version: 4,
		url:     "http://json-schema.org/draft-04/schema",
		id:      "id",
		subschemas: map[string]position{
			// type agnostic
			"definitions": posProp,
			"not":         posSelf,
			"allOf":       posItem,
			"anyOf":       posItem,
			"oneOf":       posItem,
			// object
			"properties":           posProp,
			"additionalProperties": posSelf,
			"patternProperties":    posProp,
			// array
			"items":           posSelf | posItem,
			"additionalItems": posSelf,
			"dependencies":    posProp,
		},
		vocabPrefix:   "",
		allVocabs:     map[string]*Schema{},
		defaultVocabs: []string{},
	}

	Draft6 = &Draft{
		version: 6,
		url:     "http://json-schema.org/draft-06/schema",
		id:      "$id",
		subschemas: joinMaps(Draft4.subschemas, map[string]position{
			"propertyNames": posSelf,
			"contains":      posSelf,
		}),
		vocabPrefix:   "",
		allVocabs:     map[string]*Schema{},
		defaultVocabs: []string{},
	}

	Draft7 = &Draft{
		version: 7,
		url:     "http://json-schema.org/draft-07/schema",
		id:      "$id",
		subschemas: joinMaps(Draft6.subschemas, map[string]position{
			"if":   posSelf,
			"then": posSelf,
			"else": posSelf,
		}),
		vocabPrefix:   "",
		allVocabs:     map[string]*Schema{},
		defaultVocabs: []string{},
	}

	Draft2019 = &Draft{
		version: 2019,
		url:     "https://json-schema.org/draft/2019-09/schema",
		id:      "$id",
		subschemas: joinMaps(Draft7.subschemas, map[string]position{
			"$defs":                 posProp,
			"dependentSchemas":      posProp,
			"unevaluatedProperties": posSelf,
			"unevaluatedItems":      posSelf,
			"contentSchema":         posSelf,
		}),
		vocabPrefix: "https://json-schema.org/draft/2019-09/vocab/",
		allVocabs: map[string]*Schema{
			"core":       nil,
			"applicator": nil,
			"validation": nil,
			"meta-data":  nil,
			"format":     nil,
			"content":    nil,
		},
		defaultVocabs: []string{"core", "applicator", "validation"},
	}

	Draft2020 = &Draft{
		version: 2020,
		url:     "https://json-schema.org/draft/2020-12/schema",
		id:      "$id",
		subschemas: joinMaps(Draft2019.subschemas, map[string]position{
			"prefixItems": posItem,
		}),
		vocabPrefix: "https://json-schema.org/draft/2020-12/vocab/",
		allVocabs: map[string]*Schema{
			"core":              nil,
			"applicator":        nil,
			"unevaluated":       nil,
			"validation":        nil,
			"meta-data":         nil,
			"format-annotation": nil,
			"format-assertion":  nil,
			"content":           nil,
		},
		defaultVocabs: []string{"core", "applicator", "unevaluated", "validation"},
	}

	draftLatest = Draft2020
)

func init() {
	c := NewCompiler()
	c.AssertFormat()
	for _, d := range []*Draft{Draft4, Draft6, Draft7, Draft2019, Draft2020} {
		d.sch = c.MustCompile(d.url)
		for name := range d.allVocabs {
			d.allVocabs[name] = c.MustCompile(strings.TrimSuffix(d.url, "schema") + "meta/" + name)
		}
	}
}

func draftFromURL(url string) *Draft {
	u, frag := split(url)
	if frag != "" {
		return nil
	}
	u, ok := strings.CutPrefix(u, "http://")
	if !ok {
		u, _ = strings.CutPrefix(u, "https://")
	}
	switch u {
	case "json-schema.org/schema":
		return draftLatest
	case "json-schema.org/draft/2020-12/schema":
		return Draft2020
	case "json-schema.org/draft/2019-09/schema":
		return Draft2019
	case "json-schema.org/draft-07/schema":
		return Draft7
	case "json-schema.org/draft-06/schema":
		return Draft6
	case "json-schema.org/draft-04/schema":
		return Draft4
	default:
		return nil
	}
}

func draftFromVersion(version int) *Draft {
	switch version {
	case 4:
		return Draft4
	case 6:
		return Draft6
	case 7:
		return Draft7
	case 2019:
		return Draft2019
	case 2020:
		return Draft2020
	default:
		return nil
	}
}

func (d *Draft) getID(obj map[string]any) string {
	if d.version < 2019 {
		if _, ok := obj["$ref"]; ok {
			// All other properties in a "$ref" object MUST be ignored
			return ""
		}
	}

	id, ok := strVal(obj, d.id)
	if !ok {
		return ""
	}
	id, _ = split(id) // ignore fragment
	return id
}

// getVocabs reads the $vocabulary map of a meta-schema document. Entries
// with required=false are dropped. A required vocabulary the draft does
// not define is an error.
func (d *Draft) getVocabs(u url, doc any) ([]string, error) {
	if d.version < 2019 {
		return nil, nil
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, nil
	}
	v, ok := obj["$vocabulary"]
	if !ok {
		return nil, nil
	}
	obj, ok = v.(map[string]any)
	if !ok {
		return nil, nil
	}

	var vocabs []string
	for vocab, reqd := range obj {
		if reqd, ok := reqd.(bool); !ok || !reqd {
			continue
		}
		name, ok := strings.CutPrefix(vocab, d.vocabPrefix)
		if !ok {
			return nil, &errors.UnsupportedVocabularyError{URL: u.String(), Vocabulary: vocab}
		}
		if _, ok := d.allVocabs[name]; !ok {
			return nil, &errors.UnsupportedVocabularyError{URL: u.String(), Vocabulary: vocab}
		}
		if !slices.Contains(vocabs, name) {
			vocabs = append(vocabs, name)
		}
	}
	if !slices.Contains(vocabs, "core") {
		vocabs = append(vocabs, "core")
	}
	return vocabs, nil
}

func (d *Draft) collectResources(sch any, base url, schPtr jsonPointer, u url, resources map[jsonPointer]*resource) error {
	if _, ok := resources[schPtr]; ok {
		// resources are already collected
		return nil
	}
	if _, ok := sch.(bool); ok {
		if schPtr.isEmpty() {
			// root resource
			resources[schPtr] = newResource(schPtr, base)
		}
		return nil
	}
	obj, ok := sch.(map[string]any)
	if !ok {
		return nil
	}

	if sch, ok := obj["$schema"]; ok {
		if sch, ok := sch.(string); ok && sch != "" {
			if got := draftFromURL(sch); got != nil && got != d {
				loc := urlPtr{u, schPtr}
				return &errors.MetaSchemaMismatchError{URL: loc.String()}
			}
		}
	}

	var res *resource
	if id := d.getID(obj); id != "" {
		uf, err := base.join(id)
		if err != nil {
			loc := urlPtr{u, schPtr}
			return &errors.ParseIDError{URL: loc.String()}
		}
		base = uf.url
		res = newResource(schPtr, base)
	} else if schPtr.isEmpty() {
		// root resource
		res = newResource(schPtr, base)
	}

	if res != nil {
		for _, res := range resources {
			if res.id == base {
				return &errors.DuplicateIDError{
					ID: base.String(), URL: u.String(),
					Ptr1: string(schPtr), Ptr2: string(res.ptr),
				}
			}
		}
		resources[schPtr] = res
	}

	// collect anchors into base resource
	for _, res := range resources {
		if res.id == base {
			// found base resource
			if err := d.collectAnchors(sch, schPtr, res, u); err != nil {
				return err
			}
			break
		}
	}

	for kw, pos := range d.subschemas {
		v, ok := obj[kw]
		if !ok {
			continue
		}
		if pos&posSelf != 0 {
			ptr := schPtr.append(kw)
			if err := d.collectResources(v, base, ptr, u, resources); err != nil {
				return err
			}
		}
		if pos&posItem != 0 {
			if arr, ok := v.([]any); ok {
				for i, item := range arr {
					ptr := schPtr.append2(kw, fmt.Sprint(i))
					if err := d.collectResources(item, base, ptr, u, resources); err != nil {
						return err
					}
				}
			}
		}
		if pos&posProp != 0 {
			if obj, ok := v.(map[string]any); ok {
				for pname, pvalue := range obj {
					ptr := schPtr.append2(kw, pname)
					if err := d.collectResources(pvalue, base, ptr, u, resources); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}

func (d *Draft) collectAnchors(sch any, schPtr jsonPointer, res *resource, u url) error {
	obj, ok := sch.(map[string]any)
	if !ok {
		return nil
	}

	addAnchor := func(anchor anchor) error {
		ptr1, ok := res.anchors[anchor]
		if ok {
			if ptr1 == schPtr {
				// anchor with same pointer already exists
				return nil
			}
			return &errors.DuplicateAnchorError{
				Anchor: string(anchor), URL: u.String(),
				Ptr1: string(ptr1), Ptr2: string(schPtr),
			}
		}
		res.anchors[anchor] = schPtr
		return nil
	}

	if d.version < 2019 {
		if _, ok := obj["$ref"]; ok {
			// All other properties in a "$ref" object MUST be ignored
			return nil
		}
		// anchor is specified in id
		if id, ok := strVal(obj, d.id); ok {
			_, frag, err := splitFragment(id)
			if err != nil {
				loc := urlPtr{u, schPtr}
				return &errors.ParseAnchorError{URL: loc.String()}
			}
			if anchor, ok := frag.convert().(anchor); ok {
				if err := addAnchor(anchor); err != nil {
					return err
				}
			}
		}
	}
	if d.version >= 2019 {
		if s, ok := strVal(obj, "$anchor"); ok {
			if err := addAnchor(anchor(s)); err != nil {
				return err
			}
		}
	}
	if d.version >= 2020 {
		if s, ok := strVal(obj, "$dynamicAnchor"); ok {
			if err := addAnchor(anchor(s)); err != nil {
				return err
			}
			res.dynamicAnchors = append(res.dynamicAnchors, anchor(s))
		}
	}

	return nil
}

func (d *Draft) isSubschema(ptr string) bool {
	if ptr == "" {
		return true
	}

	split := func(ptr string) (string, string) {
		ptr = ptr[1:] // rm `/` prefix
		if slash := strings.IndexByte(ptr, '/'); slash != -1 {
			return ptr[:slash], ptr[slash:]
		}
		return ptr, ""
	}

	tok, rest := split(ptr)
	if pos, ok := d.subschemas[tok]; ok {
		if pos&posSelf != 0 && d.isSubschema(rest) {
			return true
		}
		if rest != "" {
			if pos&posProp != 0 {
				_, rest := split(rest)
				if d.isSubschema(rest) {
					return true
				}
			}
			if pos&posItem != 0 {
				tok, rest := split(rest)
				if _, err := strconv.Atoi(tok); err == nil && d.isSubschema(rest) {
					return true
				}
			}
		}
	}

	return false
}

// --

// dialect is the draft and the vocabulary subset active for a document.
// A nil vocabs means the draft's default vocabularies apply.
type dialect struct {
	draft  *Draft
	vocabs []string
}

func (d *dialect) hasVocab(name string) bool {
	if name == "core" || d.draft.version < 2019 {
		return true
	}
	if d.vocabs != nil {
		return slices.Contains(d.vocabs, name)
	}
	return slices.Contains(d.draft.defaultVocabs, name)
}

// getSchema returns the meta-schema to validate documents of this dialect.
// With a vocabulary subset active, the meta-schema is the conjunction of
// the subset's vocabulary schemas.
func (d *dialect) getSchema() *Schema {
	if d.vocabs == nil {
		return d.draft.sch
	}

	var allOf []*Schema
	for _, vocab := range d.vocabs {
		if sch := d.draft.allVocabs[vocab]; sch != nil {
			allOf = append(allOf, sch)
		}
	}
	if !slices.Contains(d.vocabs, "core") {
		sch := d.draft.allVocabs["core"]
		if sch == nil {
			sch = d.draft.sch
		}
		allOf = append(allOf, sch)
	}
	sch := &Schema{
		Location:     "urn:mem:metaschema",
		addr:         urlPtr{url("urn:mem:metaschema"), ""},
		DraftVersion: d.draft.version,
		AllOf:        allOf,
	}
	sch.resource = sch
	if sch.DraftVersion >= 2020 {
		sch.DynamicAnchor = "meta"
		sch.dynamicAnchors = map[string]*Schema{
			"meta": sch,
		}
	}
	return sch
}

// --

func joinMaps(m1, m2 map[string]position) map[string]position {
	m := make(map[string]position, len(m1)+len(m2))
	for k, v := range m1 {
		m[k] = v
	}
	for k, v := range m2 {
		m[k] = v
	}
	return m
}
