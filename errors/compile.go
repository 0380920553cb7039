// Package errors defines the error taxonomy of the jsonschema module:
// typed compile-time errors and the hierarchical validation error model.
package errors

import (
	"fmt"
)

// LoadURLError indicates the loader failed to load a schema resource.
type LoadURLError struct {
	URL string
	Err error
}

func (e *LoadURLError) Error() string {
	return fmt.Sprintf("failed to load %q: %v", e.URL, e.Err)
}

func (e *LoadURLError) Unwrap() error { return e.Err }

// UnsupportedURLSchemeError indicates the loader declined the URL scheme.
type UnsupportedURLSchemeError struct {
	URL string
}

func (e *UnsupportedURLSchemeError) Error() string {
	return fmt.Sprintf("no URLLoader registered for %q", e.URL)
}

// ParseURLError indicates a reference is not a valid RFC 3986 URL.
type ParseURLError struct {
	URL string
	Err error
}

func (e *ParseURLError) Error() string {
	return fmt.Sprintf("error parsing url %q: %v", e.URL, e.Err)
}

func (e *ParseURLError) Unwrap() error { return e.Err }

// InvalidJSONPointerError indicates a fragment has malformed "~" escapes.
type InvalidJSONPointerError struct {
	Pointer string
}

func (e *InvalidJSONPointerError) Error() string {
	return fmt.Sprintf("invalid json-pointer %q", e.Pointer)
}

// JSONPointerNotFoundError indicates a pointer walk found a missing key,
// an out-of-range index, or a descent into a primitive.
type JSONPointerNotFoundError struct {
	URL string
}

func (e *JSONPointerNotFoundError) Error() string {
	return fmt.Sprintf("json-pointer in %q not found", e.URL)
}

// AnchorNotFoundError indicates an anchor fragment is not declared in the
// resource it refers into.
type AnchorNotFoundError struct {
	URL       string
	Reference string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor in %q not found in schema %q", e.Reference, e.URL)
}

// ParseIDError indicates an $id value could not be parsed as a URL.
type ParseIDError struct {
	URL string
}

func (e *ParseIDError) Error() string {
	return fmt.Sprintf("error parsing id at %q", e.URL)
}

// ParseAnchorError indicates an anchor declaration could not be parsed.
type ParseAnchorError struct {
	URL string
}

func (e *ParseAnchorError) Error() string {
	return fmt.Sprintf("error parsing anchor at %q", e.URL)
}

// DuplicateIDError indicates two subschemas declared the same absolute $id.
type DuplicateIDError struct {
	ID   string
	URL  string
	Ptr1 string
	Ptr2 string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q in %q at %q and %q", e.ID, e.URL, e.Ptr1, e.Ptr2)
}

// DuplicateAnchorError indicates two subschemas declared the same anchor
// within one base scope.
type DuplicateAnchorError struct {
	Anchor string
	URL    string
	Ptr1   string
	Ptr2   string
}

func (e *DuplicateAnchorError) Error() string {
	return fmt.Sprintf("duplicate anchor %q in %q at %q and %q", e.Anchor, e.URL, e.Ptr1, e.Ptr2)
}

// InvalidRegexError indicates the regexp engine rejected a pattern or a
// patternProperties key.
type InvalidRegexError struct {
	URL   string
	Regex string
	Err   error
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q at %q: %v", e.Regex, e.URL, e.Err)
}

func (e *InvalidRegexError) Unwrap() error { return e.Err }

// UnsupportedDraftError indicates a $schema URL does not resolve to a
// supported draft.
type UnsupportedDraftError struct {
	URL string
}

func (e *UnsupportedDraftError) Error() string {
	return fmt.Sprintf("draft %q is not supported", e.URL)
}

// UnsupportedVocabularyError indicates a meta-schema requires a vocabulary
// unknown to this module.
type UnsupportedVocabularyError struct {
	URL        string
	Vocabulary string
}

func (e *UnsupportedVocabularyError) Error() string {
	return fmt.Sprintf("unsupported vocabulary %q in %q", e.Vocabulary, e.URL)
}

// MetaSchemaCycleError indicates a $schema chain revisits a URL before
// reaching a built-in meta-schema.
type MetaSchemaCycleError struct {
	URL string
}

func (e *MetaSchemaCycleError) Error() string {
	return fmt.Sprintf("cycle in resolving $schema in %q", e.URL)
}

// InvalidMetaSchemaURLError indicates a $schema value is not a valid URL.
type InvalidMetaSchemaURLError struct {
	URL string
	Err error
}

func (e *InvalidMetaSchemaURLError) Error() string {
	return fmt.Sprintf("invalid $schema in %q: %v", e.URL, e.Err)
}

func (e *InvalidMetaSchemaURLError) Unwrap() error { return e.Err }

// MetaSchemaMismatchError indicates a subschema's $schema draft does not
// match the draft of the schema it is embedded in.
type MetaSchemaMismatchError struct {
	URL string
}

func (e *MetaSchemaMismatchError) Error() string {
	return fmt.Sprintf("metaschema mismatch at %q", e.URL)
}

// ResourceExistsError indicates a resource was already registered with the
// compiler under the same canonical URL.
type ResourceExistsError struct {
	URL string
}

func (e *ResourceExistsError) Error() string {
	return fmt.Sprintf("resource %q already exists", e.URL)
}

// SchemaValidationError indicates a schema document failed validation
// against its meta-schema.
type SchemaValidationError struct {
	URL string
	Err error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%q is not valid against metaschema: %v", e.URL, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
