package jsonschema

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// Regexp is a compiled regular expression.
type Regexp interface {
	fmt.Stringer

	// MatchString reports whether the string s contains any match of
	// the regular expression.
	MatchString(string) bool
}

// RegexpEngine parses a regular expression and returns, if successful,
// a [Regexp] that can be used to match against text.
type RegexpEngine func(string) (Regexp, error)

func (re RegexpEngine) validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	_, err := re(s)
	return err
}

// ecmaRegexpCompile compiles s with ECMA-262 semantics, the dialect the
// pattern keyword is specified in.
func ecmaRegexpCompile(s string) (Regexp, error) {
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return ecmaRegexp{re}, nil
}

type ecmaRegexp struct {
	re *regexp2.Regexp
}

func (r ecmaRegexp) String() string { return r.re.String() }

func (r ecmaRegexp) MatchString(s string) bool {
	// regexp2 reports an error only on timeout, which is not configured
	matched, _ := r.re.MatchString(s)
	return matched
}

// GoRegexpCompile is a [RegexpEngine] backed by the standard regexp
// package. RE2 rejects some valid ECMA-262 patterns such as
// backreferences and lookarounds.
func GoRegexpCompile(s string) (Regexp, error) {
	return regexp.Compile(s)
}
