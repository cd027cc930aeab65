// Package scalar implements the bidirectional codecs between raw XML
// text and typed scalar values, and the one-shot type inference that
// picks a codec from a single literal example.
package scalar

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/couling/xsbe/value"
)

//go:generate stringer -type=Kind

// A Kind identifies one of the seven scalar codecs. The set is closed;
// dispatch on Kind with a switch rather than through an interface method
// table.
type Kind int

const (
	Text Kind = iota
	Int
	Float
	Bool
	ISODate
	ISOZuluDate
	RFC822Date
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case ISODate:
		return "iso-date"
	case ISOZuluDate:
		return "iso-zulu-date"
	case RFC822Date:
		return "rfc822-email-date"
	default:
		return fmt.Sprintf("scalar.Kind(%d)", int(k))
	}
}

// boolWords is the closed membership set recognized by the Bool codec.
// Membership test and mapping are case-insensitive.
var boolWords = map[string]bool{
	"y": true, "yes": true, "true": true, "t": true,
	"n": false, "no": false, "false": false, "f": false,
}

const (
	isoDateLayoutDate      = "2006-01-02"
	isoDateLayoutDateTimeT = "2006-01-02T15:04:05"
	isoDateLayoutDateTimeS = "2006-01-02 15:04:05"
	// isoDateLayoutTZ/TZSpace use a numeric-only offset ("-07:00"), never
	// a literal Z: that's what keeps iso-date and iso-zulu-date disjoint
	// grammars, so the inference probe order (iso before iso-zulu) can
	// actually reach iso-zulu-date for Z-suffixed literals.
	isoDateLayoutTZ      = "2006-01-02T15:04:05-07:00"
	isoDateLayoutTZSpace = "2006-01-02 15:04:05-07:00"
	isoZuluLayout        = "2006-01-02T15:04:05Z"
	isoZuluLayoutSpace   = "2006-01-02 15:04:05Z"
)

// A Coder is an immutable, compiled scalar codec: a Kind plus the
// result_name and default that the schema compiler attached to the leaf
// it was inferred from.
type Coder struct {
	Kind       Kind
	ResultName string
	// HasDefault distinguishes "no default was declared" from a default
	// that decodes to a zero-like value.
	HasDefault bool
	Default    value.Value
}

// NewCoder builds a Coder of the given kind with no default.
func NewCoder(kind Kind, resultName string) Coder {
	return Coder{Kind: kind, ResultName: resultName}
}

// WithDefault returns a copy of c carrying a decoded default value. The
// literal is decoded through c's own Kind, per spec: a default is read
// as a string and decoded by the node's scalar coder at compile time.
func (c Coder) WithDefault(literal string) (Coder, error) {
	v, err := c.Decode(literal)
	if err != nil {
		return c, err
	}
	c.HasDefault = true
	c.Default = v
	return c, nil
}

// Decode converts raw XML text into a typed Value. BadScalar-class
// failures are returned as plain errors; the xsbe package wraps them
// with the offending qualified name.
func (c Coder) Decode(text string) (value.Value, error) {
	switch c.Kind {
	case Text:
		return value.String(text), nil
	case Int:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("scalar: %q is not an integer literal", text)
		}
		return value.Int(n), nil
	case Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("scalar: %q is not a float literal", text)
		}
		return value.Float(f), nil
	case Bool:
		b, ok := boolWords[strings.ToLower(text)]
		if !ok {
			return nil, fmt.Errorf("scalar: %q is not a recognized boolean literal", text)
		}
		return value.Bool(b), nil
	case ISODate:
		t, err := decodeISODate(text)
		if err != nil {
			return nil, err
		}
		return value.Time(t), nil
	case ISOZuluDate:
		t, err := decodeISOZuluDate(text)
		if err != nil {
			return nil, err
		}
		return value.Time(t), nil
	case RFC822Date:
		t, err := mail.ParseDate(text)
		if err != nil {
			return nil, fmt.Errorf("scalar: %q is not an rfc822 date: %w", text, err)
		}
		return value.Time(t), nil
	default:
		panic(fmt.Sprintf("scalar: unhandled kind %v", c.Kind))
	}
}

// Encode converts a typed Value back into raw XML text.
func (c Coder) Encode(v value.Value) (string, error) {
	switch c.Kind {
	case Text:
		s, ok := v.(value.String)
		if !ok {
			return "", fmt.Errorf("scalar: text coder requires a string value, got %T", v)
		}
		return string(s), nil
	case Int:
		n, ok := v.(value.Int)
		if !ok {
			return "", fmt.Errorf("scalar: int coder requires an int value, got %T", v)
		}
		return strconv.FormatInt(int64(n), 10), nil
	case Float:
		f, ok := v.(value.Float)
		if !ok {
			return "", fmt.Errorf("scalar: float coder requires a float value, got %T", v)
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
	case Bool:
		b, ok := v.(value.Bool)
		if !ok {
			return "", fmt.Errorf("scalar: bool coder requires a bool value, got %T", v)
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case ISODate:
		t, ok := v.(value.Time)
		if !ok {
			return "", fmt.Errorf("scalar: iso-date coder requires a time value, got %T", v)
		}
		return time.Time(t).Format(isoDateLayoutTZ), nil
	case ISOZuluDate:
		t, ok := v.(value.Time)
		if !ok {
			return "", fmt.Errorf("scalar: iso-zulu-date coder requires a time value, got %T", v)
		}
		return time.Time(t).UTC().Format(isoZuluLayout), nil
	case RFC822Date:
		t, ok := v.(value.Time)
		if !ok {
			return "", fmt.Errorf("scalar: rfc822-email-date coder requires a time value, got %T", v)
		}
		return time.Time(t).UTC().Format(time.RFC1123Z), nil
	default:
		panic(fmt.Sprintf("scalar: unhandled kind %v", c.Kind))
	}
}

// decodeISODate parses YYYY-MM-DD optionally followed by (T| )HH:MM:SS
// and an optional ±HH:MM offset. The timezone, if present, is preserved;
// if absent the resulting time.Time is in UTC, as time.Parse returns it
// (time.Local is never assumed).
func decodeISODate(text string) (time.Time, error) {
	layouts := []string{
		isoDateLayoutTZ,
		isoDateLayoutTZSpace,
		isoDateLayoutDateTimeT,
		isoDateLayoutDateTimeS,
		isoDateLayoutDate,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("scalar: %q is not an iso-date literal", text)
}

// decodeISOZuluDate is decodeISODate restricted to inputs carrying a
// literal trailing Z.
func decodeISOZuluDate(text string) (time.Time, error) {
	if !strings.HasSuffix(text, "Z") {
		return time.Time{}, fmt.Errorf("scalar: %q is not an iso-zulu-date literal (missing Z)", text)
	}
	layouts := []string{isoZuluLayout, isoZuluLayoutSpace}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("scalar: %q is not an iso-zulu-date literal", text)
}

// Infer picks a Kind for a single literal example, in the fixed probe
// order: boolean membership, then numeric (float if it contains '.',
// else int), then each date coder in turn, falling back to text. The
// result is frozen into the compiled transformer; it is never
// re-evaluated per instance.
func Infer(literal string) Kind {
	if _, ok := boolWords[strings.ToLower(literal)]; ok {
		return Bool
	}
	if _, err := strconv.ParseFloat(literal, 64); err == nil {
		if strings.Contains(literal, ".") {
			return Float
		}
		return Int
	}
	if _, err := decodeISODate(literal); err == nil {
		return ISODate
	}
	if _, err := decodeISOZuluDate(literal); err == nil {
		return ISOZuluDate
	}
	if _, err := mail.ParseDate(literal); err == nil {
		return RFC822Date
	}
	return Text
}
