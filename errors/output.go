package errors

import (
	"github.com/goccy/go-json"
	"golang.org/x/text/message"
)

// FlagOutput is the "flag" output format: validity only.
type FlagOutput struct {
	Valid bool `json:"valid"`
}

// OutputUnit is a node of the "basic" and "detailed" output formats.
type OutputUnit struct {
	Valid                   bool         `json:"valid"`
	KeywordLocation         string       `json:"keywordLocation"`
	AbsoluteKeywordLocation string       `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string       `json:"instanceLocation"`
	Error                   *OutputError `json:"error,omitempty"`
	Errors                  []OutputUnit `json:"errors,omitempty"`
}

// OutputError is a leaf message in an OutputUnit.
type OutputError struct {
	Kind Kind
	p    *message.Printer
}

func (e *OutputError) String() string {
	p := e.p
	if p == nil {
		p = defaultPrinter
	}
	return e.Kind.LocalizedString(p)
}

func (e *OutputError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// FlagOutput renders the error in the "flag" format.
func (e *ValidationError) FlagOutput() FlagOutput {
	return FlagOutput{Valid: false}
}

// BasicOutput renders the error in the "basic" format: a flat list of
// output units. AbsoluteKeywordLocation is emitted only for units reached
// through a reference keyword.
func (e *ValidationError) BasicOutput() OutputUnit {
	return e.LocalizedBasicOutput(nil)
}

// LocalizedBasicOutput is like BasicOutput with a specific printer.
func (e *ValidationError) LocalizedBasicOutput(p *message.Printer) OutputUnit {
	var flatten func(err *ValidationError, inRef bool, units []OutputUnit) []OutputUnit
	flatten = func(err *ValidationError, inRef bool, units []OutputUnit) []OutputUnit {
		if _, ok := err.Kind.(*ReferenceKind); ok {
			inRef = true
		}
		unit := OutputUnit{
			Valid:            false,
			KeywordLocation:  err.KeywordLocation,
			InstanceLocation: err.InstanceLocation,
			Error:            &OutputError{err.Kind, p},
		}
		if inRef {
			unit.AbsoluteKeywordLocation = err.AbsoluteKeywordLocation
		}
		units = append(units, unit)
		for _, cause := range err.Causes {
			units = flatten(cause, inRef, units)
		}
		return units
	}

	unit := OutputUnit{
		Valid:            false,
		KeywordLocation:  e.KeywordLocation,
		InstanceLocation: e.InstanceLocation,
	}
	if len(e.Causes) == 0 {
		unit.Error = &OutputError{e.Kind, p}
	} else {
		for _, cause := range e.Causes {
			unit.Errors = flatten(cause, false, unit.Errors)
		}
	}
	return unit
}

// DetailedOutput renders the error in the "detailed" format: the error tree
// with its hierarchy preserved.
func (e *ValidationError) DetailedOutput() OutputUnit {
	return e.LocalizedDetailedOutput(nil)
}

// LocalizedDetailedOutput is like DetailedOutput with a specific printer.
func (e *ValidationError) LocalizedDetailedOutput(p *message.Printer) OutputUnit {
	var outputUnit func(err *ValidationError, inRef bool) OutputUnit
	outputUnit = func(err *ValidationError, inRef bool) OutputUnit {
		if _, ok := err.Kind.(*ReferenceKind); ok {
			inRef = true
		}
		unit := OutputUnit{
			Valid:            false,
			KeywordLocation:  err.KeywordLocation,
			InstanceLocation: err.InstanceLocation,
		}
		if inRef {
			unit.AbsoluteKeywordLocation = err.AbsoluteKeywordLocation
		}
		if len(err.Causes) == 0 {
			unit.Error = &OutputError{err.Kind, p}
		} else {
			for _, cause := range err.Causes {
				unit.Errors = append(unit.Errors, outputUnit(cause, inRef))
			}
		}
		return unit
	}
	return outputUnit(e, false)
}
