package curve

import (
	"errors"
	"fmt"
)

// Sentinel kinds, matchable with errors.Is.
var (
	ErrFormat     = errors.New("curve: malformed input")
	ErrEvaluation = errors.New("curve: equation cannot be evaluated")
	ErrValidation = errors.New("curve: invalid segment")
	ErrSynthesis  = errors.New("curve: synthesis failed")

	ErrSyntax          = errors.New("syntax error")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownFunction = errors.New("unknown function")
	ErrArity           = errors.New("wrong number of arguments")
	ErrNonFinite       = errors.New("result is not a finite number")
)

// FormatError reports malformed time, date or number text.
type FormatError struct {
	Input  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid format %q: %s", e.Input, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// EvaluationError reports an equation that does not parse or does not
// reduce to a finite real number. Pos is the byte offset of a syntax
// problem, or -1. HasTime is set when the failure happened at a specific t.
type EvaluationError struct {
	Equation string
	Pos      int
	Time     TimeValue
	HasTime  bool
	Err      error
}

func (e *EvaluationError) Error() string {
	switch {
	case e.HasTime:
		return fmt.Sprintf("invalid equation %q at t=%g: %v", e.Equation, float64(e.Time), e.Err)
	case e.Pos >= 0:
		return fmt.Sprintf("invalid equation %q at offset %d: %v", e.Equation, e.Pos, e.Err)
	default:
		return fmt.Sprintf("invalid equation %q: %v", e.Equation, e.Err)
	}
}

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

func (e *EvaluationError) Unwrap() error { return e.Err }

type ValidationKind int

const (
	OrderingViolation ValidationKind = iota + 1
	InvalidNoiseBound
)

func (k ValidationKind) String() string {
	switch k {
	case OrderingViolation:
		return "ordering violation"
	case InvalidNoiseBound:
		return "invalid noise bound"
	default:
		return "unknown"
	}
}

// ValidationError reports a segment that breaks start < end or has a
// negative noise bound. Index is the segment position, or -1 when the
// segment was validated on its own.
type ValidationError struct {
	Kind       ValidationKind
	Index      int
	Start      string
	End        string
	NoiseBound float64
}

func (e *ValidationError) Error() string {
	prefix := "segment"
	if e.Index >= 0 {
		prefix = fmt.Sprintf("segment %d", e.Index+1)
	}
	switch e.Kind {
	case OrderingViolation:
		return fmt.Sprintf("%s: start time must be before end time: %s - %s", prefix, e.Start, e.End)
	case InvalidNoiseBound:
		return fmt.Sprintf("%s: noise bound must not be negative, got %g", prefix, e.NoiseBound)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Kind)
	}
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type SynthesisKind int

const (
	DegenerateSeries SynthesisKind = iota + 1
	EvaluationFailed
	InvalidSampling
)

func (k SynthesisKind) String() string {
	switch k {
	case DegenerateSeries:
		return "degenerate series"
	case EvaluationFailed:
		return "evaluation failed"
	case InvalidSampling:
		return "invalid sampling"
	default:
		return "unknown"
	}
}

// SynthesisError reports a run that produced no usable series. For
// EvaluationFailed, Segment and Time locate the failing sample and Err
// holds the underlying *EvaluationError.
type SynthesisError struct {
	Kind    SynthesisKind
	Segment int
	Time    TimeValue
	Err     error
}

func (e *SynthesisError) Error() string {
	switch e.Kind {
	case DegenerateSeries:
		return "invalid time range: all sampled time points are identical"
	case EvaluationFailed:
		return fmt.Sprintf("segment %d at t=%g: %v", e.Segment+1, float64(e.Time), e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return e.Kind.String()
	}
}

func (e *SynthesisError) Is(target error) bool { return target == ErrSynthesis }

func (e *SynthesisError) Unwrap() error { return e.Err }
