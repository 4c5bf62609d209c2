package synth

import "fmt"

type samplingError struct {
	sampling Sampling
}

func (e samplingError) Error() string {
	return fmt.Sprintf("sampling needs a positive interval or division count, got interval=%g divisions=%d",
		e.sampling.IntervalMinutes, e.sampling.Divisions)
}

func errInvalidSampling(s Sampling) error { return samplingError{sampling: s} }
