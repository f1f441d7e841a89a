package grid

import (
	"fmt"
)

/*

Errors

Structured errors in place of bare strings, so callers (and the
web service) can react to what failed rather than parsing
English.  An Error says "this thing failed to meet this
condition" and carries supplemental detail; Error() verbalizes
it when a string is all the caller wants.

Only malformed construction input produces these: a bad
alphabet, bad row strings, an out-of-range choice.  Dead search
branches (duplicates, empty candidate sets) are ordinary states
reported by IsConsistent, never errors.

*/

// An Error describes a precondition violation on a grid
// operation.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error refers to.
type ErrorScope int

// Constants for the error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	GeometryScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the
// overall Scope, an Attribute of the Scope, or the value of an
// Attribute of the Scope.
type ErrorStructure int

// Constants for the structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the attribute or
// value failed to satisfy.
type ErrorCondition int

// Constants for the error conditions.
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	OutOfRangeCondition
	NonSquareCondition
	DuplicateSymbolsCondition
	UnknownSymbolCondition
	WrongRowCountCondition
	WrongRowLengthCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	LocationAttribute
	AlphabetAttribute
	SideLengthAttribute
	RowsAttribute
	RowAttribute
	ColAttribute
	SymbolAttribute
	MaxAttribute
)

// ErrorData carries the details: the offending value and, where
// it applies, the limit that was violated.  Every item must be
// JSON-serializable so the web service can return it; there is
// no way to make the compiler check that, so implementors just
// have to do the right thing.
type ErrorData []interface{}

// attributeError builds the Error for a bad attribute value.
// Alphabet and side-length problems are geometry errors; the
// rest are argument errors.  For the bounds conditions the limit
// is appended to the error data.
func attributeError(attr ErrorAttribute, val interface{}, cond ErrorCondition, limit int) Error {
	scope := ArgumentScope
	if attr == AlphabetAttribute || attr == SideLengthAttribute {
		scope = GeometryScope
	}
	err := Error{
		Scope:     scope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: cond,
		Values:    ErrorData{val},
	}
	switch cond {
	case TooSmallCondition, TooLargeCondition, OutOfRangeCondition,
		WrongRowCountCondition, WrongRowLengthCondition:
		err.Values = append(err.Values, limit)
	}
	return err
}

// Error returns an error string for an Error.  A pre-canned
// Message wins; otherwise an appropriate (English,
// non-localized) message is produced.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case GeometryScope:
		es = "Invalid geometry: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case LocationAttribute:
			es += fmt.Sprintf("In grid.%v", nextVal())
		case AlphabetAttribute:
			es += "Alphabet"
		case SideLengthAttribute:
			es += "Side length"
		case RowsAttribute:
			es += "Rows"
		case RowAttribute:
			es += "Row"
		case ColAttribute:
			es += "Column"
		case SymbolAttribute:
			es += "Symbol"
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("Must be at most %v", nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("Must be at least %v", nextVal())
	case OutOfRangeCondition:
		es += fmt.Sprintf("Must be between 0 and %v", nextVal())
	case NonSquareCondition:
		es += "Not a perfect square"
	case DuplicateSymbolsCondition:
		es += "Symbol repeats or is the placeholder"
	case UnknownSymbolCondition:
		es += "Not in the alphabet"
	case WrongRowCountCondition:
		es += fmt.Sprintf("Must have exactly %v rows", nextVal())
	case WrongRowLengthCondition:
		es += fmt.Sprintf("Must have exactly %v symbols", nextVal())
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}
