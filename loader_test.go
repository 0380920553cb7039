package jsonschema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/jacoelho/jsonschema"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestFileLoaderJSON(t *testing.T) {
	path := writeTemp(t, "schema.json", `{"type": "integer"}`)
	sch, err := jsonschema.NewCompiler().Compile(path)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `7`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `"seven"`)); err == nil {
		t.Fatal("Validate() expected error for string instance")
	}
}

func TestFileLoaderYAML(t *testing.T) {
	path := writeTemp(t, "schema.yaml", "type: object\nrequired:\n  - name\n")
	sch, err := jsonschema.NewCompiler().Compile(path)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `{"name": "x"}`)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := sch.Validate(mustUnmarshal(t, `{}`)); err == nil {
		t.Fatal("Validate() expected error for missing property")
	}
}

func TestFileLoaderToFile(t *testing.T) {
	var l jsonschema.FileLoader
	path, err := l.ToFile("file:///tmp/schema.json")
	if err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}
	if path != "/tmp/schema.json" {
		t.Fatalf("ToFile() = %q, want /tmp/schema.json", path)
	}
	if _, err := l.ToFile("http://example.com/schema.json"); err == nil {
		t.Fatal("ToFile() expected error for non-file url")
	}
}

func TestSchemeURLLoader(t *testing.T) {
	path := writeTemp(t, "schema.json", `{"type": "boolean"}`)
	l := jsonschema.SchemeURLLoader{"file": jsonschema.FileLoader{}}
	doc, err := l.Load("file://" + path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok || obj["type"] != "boolean" {
		t.Fatalf("Load() = %v, want schema document", doc)
	}
	if _, err := l.Load("http://example.com/x.json"); err == nil {
		t.Fatal("Load() expected error for unregistered scheme")
	}
}

func TestUnmarshalJSON(t *testing.T) {
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(`{"a": 1.0}`))
	if err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	obj := v.(map[string]any)
	if _, ok := obj["a"].(json.Number); !ok {
		t.Fatalf("UnmarshalJSON() number decoded as %T, want json.Number", obj["a"])
	}

	if _, err := jsonschema.UnmarshalJSON(strings.NewReader(`{} trailing`)); err == nil {
		t.Fatal("UnmarshalJSON() expected error for trailing data")
	}
	if _, err := jsonschema.UnmarshalJSON(strings.NewReader(`{"a":`)); err == nil {
		t.Fatal("UnmarshalJSON() expected error for truncated document")
	}
}

func TestUnmarshalYAML(t *testing.T) {
	v, err := jsonschema.UnmarshalYAML(strings.NewReader("a:\n  b: [1, 2]\n"))
	if err != nil {
		t.Fatalf("UnmarshalYAML() error = %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("UnmarshalYAML() = %T, want map[string]any", v)
	}
	if _, ok := obj["a"].(map[string]any); !ok {
		t.Fatalf("UnmarshalYAML() nested mapping = %T, want map[string]any", obj["a"])
	}

	if _, err := jsonschema.UnmarshalYAML(strings.NewReader("1: x\n")); err == nil {
		t.Fatal("UnmarshalYAML() expected error for non-string key")
	}
}
