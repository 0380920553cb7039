package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jsonschema"
	jserrors "github.com/jacoelho/jsonschema/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaLoc := fs.String("schema", "", "path or url of the JSON schema")
	draftVersion := fs.Int("draft", 0, "default draft for schemas without $schema (4, 6, 7, 2019 or 2020)")
	assertFormat := fs.Bool("assert-format", false, "enable format assertions for all drafts")
	assertContent := fs.Bool("assert-content", false, "enable content assertions")
	output := fs.String("output", "", "output format: flag, basic or detailed")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s --schema <schema.json> <instance.json>...\n\n", os.Args[0]),
			writeln(stderr, "Validates JSON documents against a JSON schema."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *schemaLoc == "" {
		if err := writeln(stderr, "error: --schema is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	instances := fs.Args()
	if len(instances) == 0 {
		if err := writeln(stderr, "error: at least one instance file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	opts := []jsonschema.CompileOption{
		jsonschema.WithAssertFormat(*assertFormat),
		jsonschema.WithAssertContent(*assertContent),
	}
	if *draftVersion != 0 {
		draft, err := draftFor(*draftVersion)
		if err != nil {
			if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
				return 1
			}
			return 2
		}
		opts = append(opts, jsonschema.WithDefaultDraft(draft))
	}
	if *output != "" {
		switch *output {
		case "flag", "basic", "detailed":
		default:
			if err := writef(stderr, "error: unknown output format %q\n", *output); err != nil {
				return 1
			}
			return 2
		}
	}

	engine, err := jsonschema.Compile(*schemaLoc, opts...)
	if err != nil {
		if writeErr := writef(stderr, "error compiling schema: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	results := make([]error, len(instances))
	var g errgroup.Group
	for i, path := range instances {
		i, path := i, path
		g.Go(func() error {
			results[i] = validateFile(engine, path)
			return nil
		})
	}
	_ = g.Wait()

	exit := 0
	for i, path := range instances {
		err := results[i]
		if err == nil {
			if writeErr := writef(stdout, "%s validates\n", path); writeErr != nil {
				return 1
			}
			continue
		}
		exit = 1
		verr, ok := jserrors.AsValidationError(err)
		if !ok {
			if writeErr := writef(stderr, "error validating %s: %v\n", path, err); writeErr != nil {
				return 1
			}
			continue
		}
		if *output != "" {
			if writeErr := writeOutput(stderr, verr, *output); writeErr != nil {
				return 1
			}
		} else if writeErr := writeln(stderr, verr.Error()); writeErr != nil {
			return 1
		}
		if writeErr := writef(stderr, "%s fails to validate\n", path); writeErr != nil {
			return 1
		}
	}
	return exit
}

func validateFile(engine *jsonschema.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err := jsonschema.UnmarshalYAML(f)
		if err != nil {
			return err
		}
		return engine.Validate(v)
	}
	return engine.ValidateJSON(f)
}

func writeOutput(w io.Writer, verr *jserrors.ValidationError, format string) error {
	var out any
	switch format {
	case "flag":
		out = verr.FlagOutput()
	case "basic":
		out = verr.BasicOutput()
	case "detailed":
		out = verr.DetailedOutput()
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return writeln(w, string(b))
}

func draftFor(version int) (*jsonschema.Draft, error) {
	switch version {
	case 4:
		return jsonschema.Draft4, nil
	case 6:
		return jsonschema.Draft6, nil
	case 7:
		return jsonschema.Draft7, nil
	case 2019:
		return jsonschema.Draft2019, nil
	case 2020:
		return jsonschema.Draft2020, nil
	}
	return nil, fmt.Errorf("unsupported draft %d", version)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
