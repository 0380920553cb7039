package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunValid(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{"type": "object", "required": ["name"]}`)
	inst := writeTemp(t, dir, "ok.json", `{"name": "alice"}`)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"--schema", schema, inst}, &stdout, &stderr); code != 0 {
		t.Fatalf("runWithArgs() = %d, want 0\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "validates") {
		t.Fatalf("stdout = %q, want validates message", stdout.String())
	}
}

func TestRunInvalid(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{"type": "object", "required": ["name"]}`)
	good := writeTemp(t, dir, "ok.json", `{"name": "alice"}`)
	bad := writeTemp(t, dir, "bad.json", `{"age": 3}`)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"--schema", schema, good, bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("runWithArgs() = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "ok.json validates") {
		t.Fatalf("stdout = %q, want ok.json validates", stdout.String())
	}
	if !strings.Contains(stderr.String(), "fails to validate") {
		t.Fatalf("stderr = %q, want failure message", stderr.String())
	}
}

func TestRunBasicOutput(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{"type": "string"}`)
	inst := writeTemp(t, dir, "bad.json", `1`)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"--schema", schema, "--output", "basic", inst}, &stdout, &stderr); code != 1 {
		t.Fatalf("runWithArgs() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), `"valid"`) {
		t.Fatalf("stderr = %q, want basic output document", stderr.String())
	}
}

func TestRunDraftFlag(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{"minimum": 5, "exclusiveMinimum": true}`)
	inst := writeTemp(t, dir, "inst.json", `5`)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"--schema", schema, "--draft", "4", inst}, &stdout, &stderr); code != 1 {
		t.Fatalf("runWithArgs() = %d, want 1", code)
	}
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{}`)
	inst := writeTemp(t, dir, "inst.json", `{}`)

	tests := []struct {
		name string
		args []string
	}{
		{"missing schema", []string{inst}},
		{"missing instances", []string{"--schema", schema}},
		{"bad draft", []string{"--schema", schema, "--draft", "5", inst}},
		{"bad output", []string{"--schema", schema, "--output", "verbose", inst}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := runWithArgs(tt.args, &stdout, &stderr); code != 2 {
				t.Fatalf("runWithArgs(%v) = %d, want 2", tt.args, code)
			}
		})
	}
}

func TestRunSchemaCompileError(t *testing.T) {
	dir := t.TempDir()
	schema := writeTemp(t, dir, "schema.json", `{"$ref": "#/missing"}`)
	inst := writeTemp(t, dir, "inst.json", `{}`)

	var stdout, stderr bytes.Buffer
	if code := runWithArgs([]string{"--schema", schema, inst}, &stdout, &stderr); code != 1 {
		t.Fatalf("runWithArgs() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "error compiling schema") {
		t.Fatalf("stderr = %q, want compile error", stderr.String())
	}
}
