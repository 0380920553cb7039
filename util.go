package jsonschema

import (
	gourl "net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/num"
)

// url is a canonical absolute URL without a fragment.
type url string

func (u url) String() string { return string(u) }

// join resolves ref against u per RFC 3986 and splits off the fragment.
func (u url) join(ref string) (*urlFrag, error) {
	base, err := gourl.Parse(string(u))
	if err != nil {
		return nil, &errors.ParseURLError{URL: string(u), Err: err}
	}
	refURL, err := gourl.Parse(ref)
	if err != nil {
		return nil, &errors.ParseURLError{URL: ref, Err: err}
	}
	res := base.ResolveReference(refURL)
	frag := fragment(res.Fragment)
	res.Fragment = ""
	res.RawFragment = ""
	return &urlFrag{url(res.String()), frag}, nil
}

// --

// fragment is a percent-decoded URL fragment: either a JSON pointer or a
// plain-name anchor.
type fragment string

// convert returns the fragment as either a jsonPointer or an anchor.
// An empty fragment or one starting with "/" is a JSON pointer.
func (f fragment) convert() any {
	if f == "" || strings.HasPrefix(string(f), "/") {
		return jsonPointer(f)
	}
	return anchor(f)
}

type anchor string

// --

type urlFrag struct {
	url  url
	frag fragment
}

func (uf *urlFrag) String() string {
	return string(uf.url) + "#" + string(uf.frag)
}

// split separates the fragment, returning it undecoded.
func split(s string) (string, string) {
	if i := strings.IndexByte(s, '#'); i != -1 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// splitFragment separates and percent-decodes the fragment.
// Fragments must be decoded before being interpreted as pointer or anchor.
func splitFragment(s string) (string, fragment, error) {
	u, f := split(s)
	decoded, err := decode(f)
	if err != nil {
		return "", "", &errors.ParseURLError{URL: s, Err: err}
	}
	return u, fragment(decoded), nil
}

func decode(s string) (string, error) {
	return gourl.PathUnescape(s)
}

// absolute resolves input to an absolute URL with separated fragment.
// Input without a scheme is interpreted as a filesystem path.
func absolute(input string) (*urlFrag, error) {
	u, frag, err := splitFragment(input)
	if err != nil {
		return nil, err
	}
	gu, err := gourl.Parse(u)
	if err == nil && gu.IsAbs() && len(gu.Scheme) > 1 {
		gu.Fragment = ""
		gu.RawFragment = ""
		return &urlFrag{url(gu.String()), frag}, nil
	}
	// no scheme, or a windows drive letter parsed as a scheme
	abs, err := filepath.Abs(u)
	if err != nil {
		return nil, &errors.ParseURLError{URL: input, Err: err}
	}
	return &urlFrag{toFileURL(abs), frag}, nil
}

func toFileURL(path string) url {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := gourl.URL{Scheme: "file", Path: path}
	return url(u.String())
}

// --

// jsonPointer is an RFC 6901 pointer. The empty pointer addresses the
// document root.
type jsonPointer string

func (ptr jsonPointer) isEmpty() bool { return ptr == "" }

func (ptr jsonPointer) append(tok string) jsonPointer {
	return jsonPointer(string(ptr) + "/" + escape(tok))
}

func (ptr jsonPointer) append2(tok1, tok2 string) jsonPointer {
	return ptr.append(tok1).append(tok2)
}

func (ptr jsonPointer) concat(next jsonPointer) jsonPointer {
	return jsonPointer(string(ptr) + string(next))
}

func escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// unescape reverses JSON pointer escaping. It reports failure on "~" not
// followed by "0" or "1".
func unescape(tok string) (string, bool) {
	i := strings.IndexByte(tok, '~')
	if i == -1 {
		return tok, true
	}
	var b strings.Builder
	for {
		b.WriteString(tok[:i])
		if i == len(tok)-1 {
			return "", false
		}
		switch tok[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", false
		}
		tok = tok[i+2:]
		i = strings.IndexByte(tok, '~')
		if i == -1 {
			b.WriteString(tok)
			return b.String(), true
		}
	}
}

// --

// urlPtr is the absolute identity of a schema location: document URL plus
// JSON pointer within it.
type urlPtr struct {
	url url
	ptr jsonPointer
}

func (up urlPtr) String() string {
	return string(up.url) + "#" + string(up.ptr)
}

// format returns the location of keyword tok under up.
func (up urlPtr) format(tok string) string {
	return up.String() + "/" + escape(tok)
}

// lookup walks doc by up.ptr.
func (up urlPtr) lookup(doc any) (any, error) {
	v := doc
	for _, tok := range up.ptr.tokens() {
		tok, ok := unescape(tok)
		if !ok {
			return nil, &errors.InvalidJSONPointerError{Pointer: up.String()}
		}
		switch val := v.(type) {
		case map[string]any:
			child, ok := val[tok]
			if !ok {
				return nil, &errors.JSONPointerNotFoundError{URL: up.String()}
			}
			v = child
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(val) {
				return nil, &errors.JSONPointerNotFoundError{URL: up.String()}
			}
			v = val[i]
		default:
			return nil, &errors.JSONPointerNotFoundError{URL: up.String()}
		}
	}
	return v, nil
}

func (ptr jsonPointer) tokens() []string {
	if ptr.isEmpty() {
		return nil
	}
	return strings.Split(string(ptr)[1:], "/")
}

// --

func strVal(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// equals implements structural JSON equality: numbers compare by
// mathematical value, objects ignore key order.
func equals(v1, v2 any) bool {
	switch v1 := v1.(type) {
	case nil:
		return v2 == nil
	case bool:
		b2, ok := v2.(bool)
		return ok && v1 == b2
	case string:
		s2, ok := v2.(string)
		return ok && v1 == s2
	case []any:
		arr2, ok := v2.([]any)
		if !ok || len(v1) != len(arr2) {
			return false
		}
		for i := range v1 {
			if !equals(v1[i], arr2[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		obj2, ok := v2.(map[string]any)
		if !ok || len(v1) != len(obj2) {
			return false
		}
		for k, val1 := range v1 {
			val2, ok := obj2[k]
			if !ok || !equals(val1, val2) {
				return false
			}
		}
		return true
	default:
		if num.IsNumber(v1) {
			return num.Equal(v1, v2)
		}
		return false
	}
}

// duplicates returns the indexes of the first pair of equal items in arr,
// or (-1, -1) if all items are distinct.
func duplicates(arr []any) (int, int) {
	for i := 1; i < len(arr); i++ {
		for j := 0; j < i; j++ {
			if equals(arr[i], arr[j]) {
				return j, i
			}
		}
	}
	return -1, -1
}
