package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrMalformedWeight is returned by [Weight.Float] when the weight is absent,
// empty, not a number, or not finite.
var ErrMalformedWeight = errors.New("malformed weight")

type weightState uint8

const (
	weightAbsent weightState = iota
	weightNumber
	weightText
)

// Weight is the raw weight of a relationship as it appeared in the source.
// The zero value is an absent weight.
type Weight struct {
	state weightState
	num   float64
	text  string
}

// NumberWeight returns a weight that was supplied as a number.
func NumberWeight(f float64) Weight { return Weight{state: weightNumber, num: f} }

// TextWeight returns a weight that was supplied as a string.
func TextWeight(s string) Weight { return Weight{state: weightText, text: s} }

// WeightOf converts a loosely typed value, as returned by database drivers,
// into a Weight. nil becomes an absent weight.
func WeightOf(v any) Weight {
	switch x := v.(type) {
	case nil:
		return Weight{}
	case Weight:
		return x
	case float64:
		return NumberWeight(x)
	case float32:
		return NumberWeight(float64(x))
	case int:
		return NumberWeight(float64(x))
	case int32:
		return NumberWeight(float64(x))
	case int64:
		return NumberWeight(float64(x))
	case uint32:
		return NumberWeight(float64(x))
	case uint64:
		return NumberWeight(float64(x))
	case string:
		return TextWeight(x)
	case []byte:
		return TextWeight(string(x))
	default:
		return TextWeight(fmt.Sprint(x))
	}
}

// Present reports whether the source supplied any value at all.
func (w Weight) Present() bool { return w.state != weightAbsent }

// IsNumber reports whether the source supplied a numeric value, as opposed
// to a string.
func (w Weight) IsNumber() bool { return w.state == weightNumber }

// Float interprets the weight as a finite real number.
// Absent weights, empty or non-numeric strings, and NaN or infinite values
// return an error wrapping [ErrMalformedWeight]. Sign is not checked here.
func (w Weight) Float() (float64, error) {
	var f float64
	switch w.state {
	case weightAbsent:
		return 0, fmt.Errorf("%w: missing", ErrMalformedWeight)
	case weightNumber:
		f = w.num
	case weightText:
		s := strings.TrimSpace(w.text)
		if s == "" {
			return 0, fmt.Errorf("%w: empty", ErrMalformedWeight)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedWeight, w.text)
		}
		f = v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrMalformedWeight, f)
	}
	return f, nil
}

// String returns the weight as it appeared in the source.
func (w Weight) String() string {
	switch w.state {
	case weightNumber:
		return strconv.FormatFloat(w.num, 'g', -1, 64)
	case weightText:
		return w.text
	default:
		return "<absent>"
	}
}

// MarshalJSON writes absent weights as null, numbers as numbers and text
// as strings. Non-finite numbers are written as null.
func (w Weight) MarshalJSON() ([]byte, error) {
	switch w.state {
	case weightNumber:
		if math.IsNaN(w.num) || math.IsInf(w.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(w.num, 'g', -1, 64)), nil
	case weightText:
		return json.Marshal(w.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (w *Weight) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "" || s == "null":
		*w = Weight{}
	case s[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		*w = TextWeight(text)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Keep the token so the builder reports it instead of the decoder.
			*w = TextWeight(s)
			return nil
		}
		*w = NumberWeight(f)
	}
	return nil
}

// UnmarshalYAML accepts a scalar of any tag. Numeric scalars that strconv
// cannot parse (.nan, .inf) are kept as text and rejected later by Float.
func (w *Weight) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("weight: line %d: expected a scalar", value.Line)
	}
	switch value.Tag {
	case "!!null":
		*w = Weight{}
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(value.Value, 64); err == nil {
			*w = NumberWeight(f)
		} else {
			*w = TextWeight(value.Value)
		}
	default:
		*w = TextWeight(value.Value)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (w Weight) MarshalYAML() (any, error) {
	switch w.state {
	case weightNumber:
		if math.IsNaN(w.num) || math.IsInf(w.num, 0) {
			return nil, nil
		}
		return w.num, nil
	case weightText:
		return w.text, nil
	default:
		return nil, nil
	}
}
