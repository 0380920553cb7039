package errors

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidationError reports that an instance failed a schema. Errors form a
// tree: each node names the failing keyword and the instance location it
// applies to, and Causes holds the nested failures that produced it.
type ValidationError struct {
	// SchemaURL is the absolute location of the schema reporting the error.
	SchemaURL string

	// KeywordLocation is the dynamic path of the failing keyword, including
	// any $ref, $dynamicRef and $recursiveRef jumps taken to reach it.
	KeywordLocation string

	// AbsoluteKeywordLocation is the dereferenced location of the failing
	// keyword.
	AbsoluteKeywordLocation string

	// InstanceLocation is the JSON pointer to the value within the instance.
	InstanceLocation string

	// Kind identifies the failing keyword and its data.
	Kind Kind

	// Causes holds nested errors.
	Causes []*ValidationError
}

var defaultPrinter = message.NewPrinter(language.English)

// Error returns an indented multi-line rendering of the error tree.
func (e *ValidationError) Error() string {
	return e.LocalizedError(defaultPrinter)
}

// LocalizedError is like Error but renders messages with the given printer.
func (e *ValidationError) LocalizedError(p *message.Printer) string {
	var b strings.Builder
	e.display(&b, p, 0)
	return b.String()
}

func (e *ValidationError) display(b *strings.Builder, p *message.Printer, indent int) {
	if indent > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString("- ")
	}
	if _, ok := e.Kind.(*SchemaKind); ok {
		b.WriteString(e.Kind.LocalizedString(p))
	} else {
		b.WriteString("at ")
		b.WriteString(quote(e.InstanceLocation))
		b.WriteString(" [")
		b.WriteString(e.KeywordLocation)
		b.WriteString("]: ")
		b.WriteString(e.Kind.LocalizedString(p))
	}
	for _, cause := range e.Causes {
		cause.display(b, p, indent+1)
	}
}

// AsValidationError extracts a *ValidationError from err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
