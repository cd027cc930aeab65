package xsbe

import (
	"encoding/xml"
	"fmt"
)

//go:generate stringer -type=ErrorKind

// An ErrorKind identifies one of the closed taxonomy of ways a schema,
// a decode, or an encode call can fail. The set is closed and small;
// callers are expected to switch on it rather than on error string
// contents.
type ErrorKind int

const (
	// UnexpectedAttribute: an attribute absent from the schema was
	// found, and ignore_unexpected is off.
	UnexpectedAttribute ErrorKind = iota
	// MissingAttribute: a mandatory attribute with no default was absent.
	MissingAttribute
	// UnexpectedElement: a child element absent from the schema was
	// found, and ignore_unexpected is off.
	UnexpectedElement
	// DuplicateElement: a non-repeating child appeared twice, or two
	// distinct elements resolved to the same result name.
	DuplicateElement
	// MissingElement: a mandatory child was absent, or a mandatory
	// repeating child's list came out empty.
	MissingElement
	// IncorrectRoot: the document's root name did not match the
	// compiled schema's root name.
	IncorrectRoot
	// BadScalar: a scalar coder rejected its input text.
	BadScalar
	// SchemaError: a structural problem in the example schema itself
	// (mixed content, two roots, an unknown `type` value, ...).
	SchemaError
	// TypeError: at encode time, a caller-supplied value had the wrong
	// shape for its position in the tree (a scalar where a list was
	// expected, and so on).
	TypeError
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedAttribute:
		return "UnexpectedAttribute"
	case MissingAttribute:
		return "MissingAttribute"
	case UnexpectedElement:
		return "UnexpectedElement"
	case DuplicateElement:
		return "DuplicateElement"
	case MissingElement:
		return "MissingElement"
	case IncorrectRoot:
		return "IncorrectRoot"
	case BadScalar:
		return "BadScalar"
	case SchemaError:
		return "SchemaError"
	case TypeError:
		return "TypeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// An Error is the single exported error type this package returns.
// Every failure of schema compilation, decode and encode produces one of
// these rather than an ad-hoc fmt.Errorf, so that callers can recover
// the Kind and the offending name with a type assertion instead of
// string matching. Errors from reading a file or parsing XML text
// (CompileFile, CompileBytes, CompileString, DecodeBytes, DecodeString)
// are returned as they come, not wrapped in an Error.
type Error struct {
	Kind ErrorKind
	// Name is the offending qualified name: the attribute or element
	// the error concerns. Every Error this package builds sets it; for
	// SchemaError it is the schema element where the problem was found.
	Name xml.Name
	// ResultName is the computed result_name for Name, where known.
	ResultName string
	// Err, if set, wraps an underlying cause (a scalar decode failure,
	// for instance).
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.ResultName != "":
		return fmt.Sprintf("xsbe: %s %s (%s): %v", e.Kind, e.Name, e.ResultName, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("xsbe: %s %s: %v", e.Kind, e.Name, e.Err)
	case e.ResultName != "":
		return fmt.Sprintf("xsbe: %s %s (%s)", e.Kind, e.Name, e.ResultName)
	case (e.Name != xml.Name{}):
		return fmt.Sprintf("xsbe: %s %s", e.Kind, e.Name)
	default:
		return fmt.Sprintf("xsbe: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, name xml.Name) *Error {
	return &Error{Kind: kind, Name: name}
}

func wrapError(kind ErrorKind, name xml.Name, err error) *Error {
	return &Error{Kind: kind, Name: name, Err: err}
}

// Sentinel causes wrapped by SchemaError-kind Errors, at compile time
// (errMixedTextContent) and at decode time.
var (
	errTextWhereValueFromExpected = fmt.Errorf("value-from node received unexpected text content")
	errMixedTextContent           = fmt.Errorf("element contains both text and child elements")
	errFlattenNotMap              = fmt.Errorf("flattened child did not decode to a mapping")
)
