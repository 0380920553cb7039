package jsonschema

import (
	gourl "net/url"

	"github.com/jacoelho/jsonschema/errors"
)

// roots indexes every document seen during compilation, keyed by its
// absolute url.
type roots struct {
	defaultDraft  *Draft
	roots         map[url]*root
	userResources map[url]any
	loader        URLLoader
}

func newRoots() *roots {
	return &roots{
		defaultDraft:  draftLatest,
		roots:         map[url]*root{},
		userResources: map[url]any{},
		loader:        SchemeURLLoader{"file": FileLoader{}},
	}
}

func (rr *roots) loadURL(u url) (any, error) {
	v, err := loadMeta(u.String())
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	if v, ok := rr.userResources[u]; ok {
		return v, nil
	}
	v, err = rr.loader.Load(u.String())
	if err != nil {
		if _, ok := err.(*errors.UnsupportedURLSchemeError); ok {
			return nil, err
		}
		return nil, &errors.LoadURLError{URL: u.String(), Err: err}
	}
	return v, nil
}

func (rr *roots) orLoad(u url) (*root, error) {
	if r, ok := rr.roots[u]; ok {
		return r, nil
	}
	doc, err := rr.loadURL(u)
	if err != nil {
		return nil, err
	}
	return rr.addRoot(u, doc, map[url]struct{}{})
}

// addRoot indexes doc under u. The dialect is derived from the $schema
// chain: a built-in meta-schema names the draft directly, a custom one
// is loaded recursively to find its hosting draft and vocabulary set.
// cycle holds the chain walked so far.
func (rr *roots) addRoot(u url, doc any, cycle map[url]struct{}) (*root, error) {
	d, err := rr.resolveDialect(u, doc, cycle)
	if err != nil {
		return nil, err
	}

	resources := map[jsonPointer]*resource{}
	if err := d.draft.collectResources(doc, u, "", u, resources); err != nil {
		return nil, err
	}

	if !isMeta(u.String()) {
		if err := rr.validate(urlPtr{u, ""}, doc, d); err != nil {
			return nil, err
		}
	}

	r := &root{
		url:                 u,
		doc:                 doc,
		dialect:             d,
		resources:           resources,
		subschemasProcessed: map[jsonPointer]struct{}{},
	}
	rr.roots[u] = r
	return r, nil
}

func (rr *roots) resolveDialect(u url, doc any, cycle map[url]struct{}) (dialect, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return dialect{draft: rr.defaultDraft}, nil
	}
	sch, ok := strVal(obj, "$schema")
	if !ok {
		return dialect{draft: rr.defaultDraft}, nil
	}
	if draft := draftFromURL(sch); draft != nil {
		return dialect{draft: draft}, nil
	}

	sch, _ = split(sch)
	if _, err := gourl.Parse(sch); err != nil {
		return dialect{}, &errors.InvalidMetaSchemaURLError{URL: u.String(), Err: err}
	}
	schURL := url(sch)
	if r, ok := rr.roots[schURL]; ok {
		return rr.metaDialect(r)
	}
	if schURL == u {
		return dialect{}, &errors.UnsupportedDraftError{URL: schURL.String()}
	}
	if _, ok := cycle[schURL]; ok {
		return dialect{}, &errors.MetaSchemaCycleError{URL: schURL.String()}
	}
	cycle[schURL] = struct{}{}
	doc, err := rr.loadURL(schURL)
	if err != nil {
		return dialect{}, err
	}
	r, err := rr.addRoot(schURL, doc, cycle)
	if err != nil {
		return dialect{}, err
	}
	return rr.metaDialect(r)
}

// metaDialect derives the dialect declared by the meta-schema root meta:
// the hosting draft with meta's required vocabularies.
func (rr *roots) metaDialect(meta *root) (dialect, error) {
	vocabs, err := meta.draft().getVocabs(meta.url, meta.doc)
	if err != nil {
		return dialect{}, err
	}
	return dialect{draft: meta.draft(), vocabs: vocabs}, nil
}

// validate checks that v is a valid schema document for dialect d.
func (rr *roots) validate(up urlPtr, v any, d dialect) error {
	if err := d.getSchema().Validate(v); err != nil {
		return &errors.SchemaValidationError{URL: up.String(), Err: err}
	}
	return nil
}

func (rr *roots) resolveFragment(uf urlFrag) (urlPtr, error) {
	r, err := rr.orLoad(uf.url)
	if err != nil {
		return urlPtr{}, err
	}
	return r.resolveFragment(uf.frag)
}

// ensureSubschema makes the value at up usable as a schema: a location
// the draft does not already treat as a subschema is validated against
// the meta-schema and indexed.
func (rr *roots) ensureSubschema(up urlPtr) error {
	r, err := rr.orLoad(up.url)
	if err != nil {
		return err
	}
	if _, ok := r.subschemasProcessed[up.ptr]; ok {
		return nil
	}
	if r.draft().isSubschema(string(up.ptr)) {
		return nil
	}
	v, err := up.lookup(r.doc)
	if err != nil {
		return err
	}
	if !isMeta(up.url.String()) {
		if err := rr.validate(up, v, r.dialect); err != nil {
			return err
		}
	}
	return r.addSubschema(up.ptr)
}
