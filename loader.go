package jsonschema

import (
	"fmt"
	"io"
	gourl "net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jacoelho/jsonschema/errors"
	"gopkg.in/yaml.v3"
)

// URLLoader knows how to load a schema document from a given url.
type URLLoader interface {
	// Load loads the document at url. Numbers must decode to json.Number
	// or a native numeric type, never a lossy representation.
	Load(url string) (any, error)
}

// --

// FileLoader loads documents for the file scheme. Files with a yaml or
// yml extension are parsed as YAML, anything else as JSON.
type FileLoader struct{}

func (l FileLoader) Load(url string) (any, error) {
	path, err := l.ToFile(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return UnmarshalYAML(f)
	default:
		return UnmarshalJSON(f)
	}
}

// ToFile converts a file url to a filesystem path.
func (l FileLoader) ToFile(url string) (string, error) {
	u, err := gourl.Parse(url)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("invalid file url: %q", url)
	}
	path := u.Path
	if runtime.GOOS == "windows" {
		path = strings.TrimPrefix(path, "/")
		path = filepath.FromSlash(path)
	}
	return path, nil
}

// --

// SchemeURLLoader dispatches to a loader by the url scheme.
type SchemeURLLoader map[string]URLLoader

func (l SchemeURLLoader) Load(url string) (any, error) {
	u, err := gourl.Parse(url)
	if err != nil {
		return nil, err
	}
	ll, ok := l[u.Scheme]
	if !ok {
		return nil, &errors.UnsupportedURLSchemeError{URL: url}
	}
	return ll.Load(url)
}

// --

// UnmarshalJSON decodes a JSON document. Numbers decode to json.Number
// so that numeric comparisons stay exact.
func UnmarshalJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil || err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	return doc, nil
}

// UnmarshalYAML decodes a YAML document into the same value shapes a
// JSON decoder produces.
func UnmarshalYAML(r io.Reader) (any, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return yamlToJSON(doc)
}

// yamlToJSON rewrites yaml decoder output to JSON value shapes. Map keys
// must be strings.
func yamlToJSON(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		for key, val := range v {
			val, err := yamlToJSON(val)
			if err != nil {
				return nil, err
			}
			v[key] = val
		}
		return v, nil
	case map[any]any:
		obj := make(map[string]any, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v in yaml mapping", key)
			}
			val, err := yamlToJSON(val)
			if err != nil {
				return nil, err
			}
			obj[s] = val
		}
		return obj, nil
	case []any:
		for i, item := range v {
			item, err := yamlToJSON(item)
			if err != nil {
				return nil, err
			}
			v[i] = item
		}
		return v, nil
	default:
		return v, nil
	}
}
