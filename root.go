package jsonschema

import (
	"strings"

	"github.com/jacoelho/jsonschema/errors"
)

// root is an indexed schema document: its embedded resources and, per
// resource, the anchors defined inside it.
type root struct {
	url                 url
	doc                 any
	dialect             dialect
	resources           map[jsonPointer]*resource
	subschemasProcessed map[jsonPointer]struct{}
}

func (r *root) draft() *Draft {
	return r.dialect.draft
}

func (r *root) rootResource() *resource {
	return r.resources[""]
}

// resource returns the innermost resource enclosing ptr.
func (r *root) resource(ptr jsonPointer) *resource {
	for {
		if res, ok := r.resources[ptr]; ok {
			return res
		}
		slash := strings.LastIndexByte(string(ptr), '/')
		if slash == -1 {
			break
		}
		ptr = ptr[:slash]
	}
	return r.rootResource()
}

func (r *root) baseURL(ptr jsonPointer) url {
	return r.resource(ptr).id
}

func (r *root) resolveFragmentIn(frag fragment, res *resource) (urlPtr, error) {
	var ptr jsonPointer
	switch f := frag.convert().(type) {
	case jsonPointer:
		ptr = res.ptr.concat(f)
	case anchor:
		aptr, ok := res.anchors[f]
		if !ok {
			return urlPtr{}, &errors.AnchorNotFoundError{
				URL:       r.url.String(),
				Reference: (&urlFrag{res.id, frag}).String(),
			}
		}
		ptr = aptr
	}
	return urlPtr{r.url, ptr}, nil
}

func (r *root) resolveFragment(frag fragment) (urlPtr, error) {
	return r.resolveFragmentIn(frag, r.rootResource())
}

// resolve maps uf to a location within this root. It returns nil if
// uf names an external document.
func (r *root) resolve(uf urlFrag) (*urlPtr, error) {
	var res *resource
	if uf.url == r.url {
		res = r.rootResource()
	} else {
		// look for resource with id == uf.url
		for _, v := range r.resources {
			if v.id == uf.url {
				res = v
				break
			}
		}
		if res == nil {
			return nil, nil // external url
		}
	}
	up, err := r.resolveFragmentIn(uf.frag, res)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// addSubschema indexes the resources and anchors of a subschema that was
// reached through a json pointer rather than resource collection.
func (r *root) addSubschema(ptr jsonPointer) error {
	if _, ok := r.subschemasProcessed[ptr]; ok {
		return nil
	}
	v, err := (urlPtr{r.url, ptr}).lookup(r.doc)
	if err != nil {
		return err
	}
	base := r.baseURL(ptr)
	if err := r.draft().collectResources(v, base, ptr, r.url, r.resources); err != nil {
		return err
	}
	if _, ok := r.resources[ptr]; !ok {
		res := r.resource(ptr)
		if err := r.draft().collectAnchors(v, ptr, res, r.url); err != nil {
			return err
		}
	}
	r.subschemasProcessed[ptr] = struct{}{}
	return nil
}

// --

// resource is a schema object with its own base URI.
type resource struct {
	ptr            jsonPointer
	id             url
	anchors        map[anchor]jsonPointer
	dynamicAnchors []anchor
}

func newResource(ptr jsonPointer, id url) *resource {
	return &resource{ptr: ptr, id: id, anchors: make(map[anchor]jsonPointer)}
}
