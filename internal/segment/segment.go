// Package segment turns user-entered segment descriptors into validated
// segments.
package segment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

// Validate checks start < end and a non-negative noise bound. The equation
// is not inspected here; it is checked when it is evaluated.
func Validate(seg curve.Segment) (curve.Segment, error) {
	return validateAt(seg, -1)
}

func validateAt(seg curve.Segment, index int) (curve.Segment, error) {
	if !(seg.Start < seg.End) {
		return curve.Segment{}, &curve.ValidationError{
			Kind:  curve.OrderingViolation,
			Index: index,
			Start: boundText(seg.StartText, seg.Start),
			End:   boundText(seg.EndText, seg.End),
		}
	}
	if seg.NoiseBound < 0 || math.IsNaN(seg.NoiseBound) || math.IsInf(seg.NoiseBound, 0) {
		return curve.Segment{}, &curve.ValidationError{
			Kind:       curve.InvalidNoiseBound,
			Index:      index,
			Start:      boundText(seg.StartText, seg.Start),
			End:        boundText(seg.EndText, seg.End),
			NoiseBound: seg.NoiseBound,
		}
	}
	return seg, nil
}

func boundText(text string, v curve.TimeValue) string {
	if text != "" {
		return text
	}
	return clock.FormatClockTime(v)
}

// Parser converts descriptors to segments. DecimalSeparator applies to
// the noise bound; empty means ".".
type Parser struct {
	DecimalSeparator string
}

// Parse converts the text fields of d and validates the result.
func (p Parser) Parse(d curve.Descriptor) (curve.Segment, error) {
	return p.parseAt(d, -1)
}

func (p Parser) parseAt(d curve.Descriptor, index int) (curve.Segment, error) {
	start, err := clock.ParseClockTime(d.Start)
	if err != nil {
		return curve.Segment{}, err
	}
	end, err := clock.ParseClockTime(d.End)
	if err != nil {
		return curve.Segment{}, err
	}
	noise, err := ParseDecimal(d.NoiseBound, p.DecimalSeparator)
	if err != nil {
		return curve.Segment{}, err
	}
	return validateAt(curve.Segment{
		Start:      start,
		End:        end,
		Equation:   strings.TrimSpace(d.Equation),
		NoiseBound: noise,
		StartText:  strings.TrimSpace(d.Start),
		EndText:    strings.TrimSpace(d.End),
	}, index)
}

// ParseAll parses descriptors in order and stops at the first failure.
// Errors name the 1-based position of the offending descriptor.
func (p Parser) ParseAll(ds []curve.Descriptor) ([]curve.Segment, error) {
	segs := make([]curve.Segment, 0, len(ds))
	for i, d := range ds {
		seg, err := p.parseAt(d, i)
		if err != nil {
			if errors.Is(err, curve.ErrValidation) {
				return nil, err
			}
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Parse uses a "." decimal separator.
func Parse(d curve.Descriptor) (curve.Segment, error) {
	return Parser{}.Parse(d)
}

// ParseAll uses a "." decimal separator.
func ParseAll(ds []curve.Descriptor) ([]curve.Segment, error) {
	return Parser{}.ParseAll(ds)
}

// ParseArg splits the command-line form "HH:MM HH:MM equation noise".
func ParseArg(arg string) (curve.Descriptor, error) {
	parts := strings.Fields(arg)
	if len(parts) != 4 {
		return curve.Descriptor{}, &curve.FormatError{
			Input:  arg,
			Reason: "each segment needs 4 parts: start end equation noise",
		}
	}
	return curve.Descriptor{Start: parts[0], End: parts[1], Equation: parts[2], NoiseBound: parts[3]}, nil
}

// ParseDecimal reads a number written with the given decimal separator.
func ParseDecimal(s, sep string) (float64, error) {
	text := strings.TrimSpace(s)
	if sep != "" && sep != "." {
		text = strings.ReplaceAll(text, sep, ".")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &curve.FormatError{Input: s, Reason: "not a decimal number", Err: err}
	}
	return v, nil
}

// ValidateList validates already-parsed segments, reporting the index of
// the first one that fails.
func ValidateList(segs []curve.Segment) error {
	for i, seg := range segs {
		if _, err := validateAt(seg, i); err != nil {
			return err
		}
	}
	return nil
}
