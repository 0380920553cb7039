package jsonschema

import (
	"embed"
	"strings"

	"github.com/goccy/go-json"
)

//go:embed metaschemas
var metaFS embed.FS

// loadMeta serves the embedded meta-schema documents for the
// json-schema.org urls. It returns nil for any other url.
func loadMeta(url string) (any, error) {
	u, ok := strings.CutPrefix(url, "http://json-schema.org/")
	if !ok {
		u, ok = strings.CutPrefix(url, "https://json-schema.org/")
	}
	if !ok {
		return nil, nil
	}
	if u == "schema" {
		u = strings.TrimSuffix(strings.TrimPrefix(draftLatest.url, "https://json-schema.org/"), "schema") + "schema"
	}
	f, err := metaFS.Open("metaschemas/" + u + ".json")
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// isMeta reports whether url names one of the embedded meta-schema
// documents. These are trusted and skip meta-validation.
func isMeta(url string) bool {
	return strings.HasPrefix(url, "http://json-schema.org/") ||
		strings.HasPrefix(url, "https://json-schema.org/")
}
