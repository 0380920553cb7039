package jsonschema

import (
	"fmt"
	"slices"

	"github.com/jacoelho/jsonschema/errors"
)

// Compiler turns schema documents into compiled [Schema] values. It
// caches every document and compiled schema it sees, so related schemas
// should share one compiler. A Compiler is not safe for concurrent use;
// the schemas it produces are.
type Compiler struct {
	compiled      map[urlPtr]*Schema
	roots         *roots
	formats       map[string]*Format
	decoders      map[string]*Decoder
	mediaTypes    map[string]*MediaType
	regexpEngine  RegexpEngine
	assertFormat  bool
	assertContent bool
}

// NewCompiler returns a Compiler with the default loader, the ECMA-262
// regexp engine, the per-draft format assertion defaults described at
// [Compiler.AssertFormat] and no content assertions.
func NewCompiler() *Compiler {
	return &Compiler{
		compiled:     map[urlPtr]*Schema{},
		roots:        newRoots(),
		formats:      map[string]*Format{},
		decoders:     map[string]*Decoder{},
		mediaTypes:   map[string]*MediaType{},
		regexpEngine: ecmaRegexpCompile,
	}
}

// DefaultDraft overrides the draft used to compile schemas without a
// $schema field. The default is the latest supported draft.
func (c *Compiler) DefaultDraft(d *Draft) {
	c.roots.defaultDraft = d
}

// AssertFormat enables format assertions for all drafts.
//
// Without it, format asserts for draft-07 and earlier only, and for
// later drafts when the meta-schema requires the format vocabulary
// (2019-09) or the format-assertion vocabulary (2020-12).
func (c *Compiler) AssertFormat() {
	c.assertFormat = true
}

// AssertContent enables assertions for the contentEncoding,
// contentMediaType and contentSchema keywords. They are annotations
// only by default.
func (c *Compiler) AssertContent() {
	c.assertContent = true
}

// RegisterFormat registers a custom format. The regex format cannot be
// overridden.
func (c *Compiler) RegisterFormat(f *Format) {
	if f.Name != "regex" {
		c.formats[f.Name] = f
	}
}

// RegisterContentEncoding registers a custom contentEncoding.
func (c *Compiler) RegisterContentEncoding(d *Decoder) {
	c.decoders[d.Name] = d
}

// RegisterContentMediaType registers a custom contentMediaType.
func (c *Compiler) RegisterContentMediaType(mt *MediaType) {
	c.mediaTypes[mt.Name] = mt
}

// AddResource adds a schema document for use in reference resolution.
// The url may be a file path or url; any fragment is ignored. Documents
// under json-schema.org and urls already added cannot be replaced.
func (c *Compiler) AddResource(url string, doc any) error {
	uf, err := absolute(url)
	if err != nil {
		return err
	}
	if isMeta(string(uf.url)) {
		return &errors.ResourceExistsError{URL: string(uf.url)}
	}
	if _, ok := c.roots.userResources[uf.url]; ok {
		return &errors.ResourceExistsError{URL: string(uf.url)}
	}
	c.roots.userResources[uf.url] = doc
	return nil
}

// UseLoader overrides the [URLLoader] used to load schema documents.
func (c *Compiler) UseLoader(loader URLLoader) {
	c.roots.loader = loader
}

// UseRegexpEngine overrides the regexp engine used for the pattern and
// patternProperties keywords and the regex format. It must be called
// before compiling any schemas.
func (c *Compiler) UseRegexpEngine(engine RegexpEngine) {
	if engine == nil {
		engine = ecmaRegexpCompile
	}
	c.regexpEngine = engine
}

// MustCompile is like [Compiler.Compile] but panics on error. It
// simplifies initialization of global variables holding compiled
// schemas.
func (c *Compiler) MustCompile(loc string) *Schema {
	sch, err := c.Compile(loc)
	if err != nil {
		panic(fmt.Sprintf("jsonschema: Compile(%q): %v", loc, err))
	}
	return sch
}

// Compile compiles the schema at loc. The fragment, if any, selects a
// subschema within the document.
func (c *Compiler) Compile(loc string) (*Schema, error) {
	uf, err := absolute(loc)
	if err != nil {
		return nil, err
	}
	addr, err := c.roots.resolveFragment(*uf)
	if err != nil {
		return nil, err
	}
	return c.run(addr)
}

// run drains a worklist seeded with addr. Every referenced location
// gets a placeholder schema the first time it is scheduled, so
// reference cycles need no special handling. Finished schemas are
// published to the cache only after the whole worklist succeeds.
func (c *Compiler) run(addr urlPtr) (*Schema, error) {
	work := newWorklist()
	c.schedule(work, addr)
	for sch := work.next(); sch != nil; sch = work.next() {
		if err := c.compileOne(sch, work); err != nil {
			return nil, err
		}
	}
	for _, sch := range work.order {
		c.compiled[sch.addr] = sch
	}
	return c.compiled[addr], nil
}

// schedule returns the schema for addr, either already compiled or
// placed on the worklist.
func (c *Compiler) schedule(work *worklist, addr urlPtr) *Schema {
	if sch, ok := c.compiled[addr]; ok {
		return sch
	}
	sch, _ := work.schedule(addr)
	return sch
}

func (c *Compiler) compileOne(sch *Schema, work *worklist) error {
	if err := c.roots.ensureSubschema(sch.addr); err != nil {
		return err
	}
	r := c.roots.roots[sch.addr.url]
	doc, err := sch.addr.lookup(r.doc)
	if err != nil {
		return err
	}
	sch.DraftVersion = r.draft().version
	c.bindResource(sch, r, work)

	switch doc := doc.(type) {
	case bool:
		sch.Bool = &doc
	case map[string]any:
		if err := c.compileKeywords(doc, sch, r, work); err != nil {
			return err
		}
	}
	recordEvaluationShortcuts(sch)
	return nil
}

// bindResource links sch to its enclosing resource and, when sch is
// itself a resource, schedules the dynamic anchors declared inside it.
func (c *Compiler) bindResource(sch *Schema, r *root, work *worklist) {
	res := r.resource(sch.addr.ptr)
	sch.resource = c.schedule(work, urlPtr{sch.addr.url, res.ptr})
	if sch.DraftVersion < 2020 || sch.addr != sch.resource.addr {
		return
	}
	for name, ptr := range res.anchors {
		if !slices.Contains(res.dynamicAnchors, name) {
			continue
		}
		if sch.dynamicAnchors == nil {
			sch.dynamicAnchors = map[string]*Schema{}
		}
		sch.dynamicAnchors[string(name)] = c.schedule(work, urlPtr{sch.addr.url, ptr})
	}
}

func (c *Compiler) compileKeywords(doc map[string]any, sch *Schema, r *root, work *worklist) error {
	if len(doc) == 0 {
		b := true
		sch.Bool = &b
		return nil
	}
	kc := keywordCompiler{
		compiler: c,
		doc:      doc,
		addr:     sch.addr,
		root:     r,
		res:      r.resource(sch.addr.ptr),
		work:     work,
	}
	return kc.compile(sch)
}

// recordEvaluationShortcuts notes which keywords already account for
// every property or item, so validation can skip unevaluated tracking.
func recordEvaluationShortcuts(sch *Schema) {
	sch.evaluatesAllProps = sch.AdditionalProperties != nil
	if sch.DraftVersion >= 2020 {
		sch.evaluatesAllItems = sch.RestItems != nil
		sch.evaluatedPrefix = len(sch.PrefixItems)
		return
	}
	sch.evaluatesAllItems = sch.AdditionalItems != nil
	switch items := sch.Items.(type) {
	case *Schema:
		sch.evaluatesAllItems = true
	case []*Schema:
		sch.evaluatedPrefix = len(items)
	}
}

// worklist --

// worklist holds schemas in discovery order. Scheduling the same
// address twice returns the placeholder created the first time.
type worklist struct {
	order   []*Schema
	pending map[urlPtr]*Schema
	cursor  int
}

func newWorklist() *worklist {
	return &worklist{pending: map[urlPtr]*Schema{}}
}

func (w *worklist) schedule(addr urlPtr) (*Schema, bool) {
	if sch, ok := w.pending[addr]; ok {
		return sch, false
	}
	sch := schemaAt(addr)
	w.order = append(w.order, sch)
	w.pending[addr] = sch
	return sch, true
}

func (w *worklist) next() *Schema {
	if w.cursor == len(w.order) {
		return nil
	}
	sch := w.order[w.cursor]
	w.cursor++
	return sch
}
