package jsonschema

import (
	"fmt"
	"io"
)

// Engine compiles a schema once and validates many instances. It is
// safe for concurrent use by multiple goroutines.
type Engine struct {
	sch          *Schema
	regexpEngine RegexpEngine
}

// CompileOption configures schema compilation.
type CompileOption interface{ apply(*compileOptions) }

type compileOptions struct {
	defaultDraft  *Draft
	assertFormat  bool
	assertContent bool
	loader        URLLoader
	regexpEngine  RegexpEngine
	baseURL       string
	resources     []resourceDoc
	formats       []*Format
	decoders      []*Decoder
	mediaTypes    []*MediaType
}

type resourceDoc struct {
	url string
	doc any
}

type compileOptionFunc func(*compileOptions)

func (f compileOptionFunc) apply(cfg *compileOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithDefaultDraft sets the draft used for schemas without a $schema
// field.
func WithDefaultDraft(d *Draft) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.defaultDraft = d
	})
}

// WithAssertFormat enables format assertions for all drafts when b is
// true. With false, the per-draft defaults of [Compiler.AssertFormat]
// apply, so drafts up to 7 still assert formats.
func WithAssertFormat(b bool) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.assertFormat = b
	})
}

// WithAssertContent controls assertions for the content keywords.
func WithAssertContent(b bool) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.assertContent = b
	})
}

// WithLoader sets a custom document loader.
func WithLoader(loader URLLoader) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.loader = loader
	})
}

// WithRegexpEngine sets the regular expression engine.
func WithRegexpEngine(engine RegexpEngine) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.regexpEngine = engine
	})
}

// WithBaseURL sets the url under which reader-based schemas are
// registered.
func WithBaseURL(base string) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.baseURL = base
	})
}

// WithResource registers an in-memory schema document for reference
// resolution. May be repeated.
func WithResource(url string, doc any) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.resources = append(cfg.resources, resourceDoc{url, doc})
	})
}

// WithFormat registers a custom format. May be repeated.
func WithFormat(f *Format) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.formats = append(cfg.formats, f)
	})
}

// WithDecoder registers a custom contentEncoding. May be repeated.
func WithDecoder(d *Decoder) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.decoders = append(cfg.decoders, d)
	})
}

// WithMediaType registers a custom contentMediaType. May be repeated.
func WithMediaType(mt *MediaType) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.mediaTypes = append(cfg.mediaTypes, mt)
	})
}

// Compile compiles the schema at loc. The location may be a file path
// or url, with an optional json pointer fragment.
func Compile(loc string, opts ...CompileOption) (*Engine, error) {
	cfg := applyCompileOptions(opts)
	c := compilerFrom(cfg)
	for _, res := range cfg.resources {
		if err := c.AddResource(res.url, res.doc); err != nil {
			return nil, err
		}
	}
	sch, err := c.Compile(loc)
	if err != nil {
		return nil, err
	}
	return &Engine{sch: sch, regexpEngine: cfg.regexpEngine}, nil
}

// CompileSchema compiles a schema read from r. The document is
// registered under the base url, which defaults to schema.json.
func CompileSchema(r io.Reader, opts ...CompileOption) (*Engine, error) {
	if r == nil {
		return nil, fmt.Errorf("compile schema: nil reader")
	}
	cfg := applyCompileOptions(opts)
	base := cfg.baseURL
	if base == "" {
		base = "schema.json"
	}

	doc, err := UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", base, err)
	}

	c := compilerFrom(cfg)
	if err := c.AddResource(base, doc); err != nil {
		return nil, err
	}
	for _, res := range cfg.resources {
		if err := c.AddResource(res.url, res.doc); err != nil {
			return nil, err
		}
	}
	sch, err := c.Compile(base)
	if err != nil {
		return nil, err
	}
	return &Engine{sch: sch, regexpEngine: cfg.regexpEngine}, nil
}

func compilerFrom(cfg compileOptions) *Compiler {
	c := NewCompiler()
	if cfg.defaultDraft != nil {
		c.DefaultDraft(cfg.defaultDraft)
	}
	if cfg.assertFormat {
		c.AssertFormat()
	}
	if cfg.assertContent {
		c.AssertContent()
	}
	if cfg.loader != nil {
		c.UseLoader(cfg.loader)
	}
	if cfg.regexpEngine != nil {
		c.UseRegexpEngine(cfg.regexpEngine)
	}
	for _, f := range cfg.formats {
		c.RegisterFormat(f)
	}
	for _, d := range cfg.decoders {
		c.RegisterContentEncoding(d)
	}
	for _, mt := range cfg.mediaTypes {
		c.RegisterContentMediaType(mt)
	}
	return c
}

// Validate checks a decoded instance against the compiled schema.
func (e *Engine) Validate(v any) error {
	if e == nil || e.sch == nil {
		return fmt.Errorf("validate: schema not compiled")
	}
	return e.sch.validate(v, e.regexpEngine)
}

// ValidateJSON decodes a json instance from r and validates it.
func (e *Engine) ValidateJSON(r io.Reader) error {
	if r == nil {
		return fmt.Errorf("validate: nil reader")
	}
	v, err := UnmarshalJSON(r)
	if err != nil {
		return err
	}
	return e.Validate(v)
}

// Schema returns the compiled schema.
func (e *Engine) Schema() *Schema {
	if e == nil {
		return nil
	}
	return e.sch
}

func applyCompileOptions(opts []CompileOption) compileOptions {
	var cfg compileOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
