// Package batch generates one run per calendar day from a randomized
// rise, plateau and fall temperature profile.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/config"
	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/experiment"
	"github.com/san-kum/tempsynth/internal/log"
	"github.com/san-kum/tempsynth/internal/storage"
	"golang.org/x/sync/errgroup"
)

// ProfileRanges bound the random parameters of a day profile.
type ProfileRanges struct {
	RiseSlope     [2]float64
	RiseIntercept [2]float64
	FallSlope     [2]float64
	Noise         [2]float64
	RiseStart     string
	PlateauStart  string
	PlateauEnd    string
	FallEnd       string
}

func DefaultRanges() ProfileRanges {
	return ProfileRanges{
		RiseSlope:     [2]float64{1, 5},
		RiseIntercept: [2]float64{15, 25},
		FallSlope:     [2]float64{-5, -1},
		Noise:         [2]float64{0.5, 1.5},
		RiseStart:     "08:00",
		PlateauStart:  "12:00",
		PlateauEnd:    "16:00",
		FallEnd:       "20:00",
	}
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Profile draws a continuous day: a linear rise, a flat plateau at the
// value the rise reaches, and a linear fall starting from the plateau.
func (p ProfileRanges) Profile(rng *rand.Rand) ([]curve.Descriptor, error) {
	plateauStart, err := clock.ParseClockTime(p.PlateauStart)
	if err != nil {
		return nil, err
	}
	plateauEnd, err := clock.ParseClockTime(p.PlateauEnd)
	if err != nil {
		return nil, err
	}

	slope1 := uniform(rng, p.RiseSlope)
	intercept1 := uniform(rng, p.RiseIntercept)
	plateau := slope1*float64(plateauStart) + intercept1
	slope3 := uniform(rng, p.FallSlope)
	intercept3 := plateau - slope3*float64(plateauEnd)
	noise := num(uniform(rng, p.Noise))

	return []curve.Descriptor{
		{Start: p.RiseStart, End: p.PlateauStart, Equation: num(slope1) + "*t+" + num(intercept1), NoiseBound: noise},
		{Start: p.PlateauStart, End: p.PlateauEnd, Equation: "0*t+" + num(plateau), NoiseBound: noise},
		{Start: p.PlateauEnd, End: p.FallEnd, Equation: num(slope3) + "*t+" + num(intercept3), NoiseBound: noise},
	}, nil
}

// Days lists every calendar day from from to to, inclusive.
func Days(from, to time.Time) []time.Time {
	var days []time.Time
	y, m, d := from.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = to.Date()
	last := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for !day.After(last) {
		days = append(days, day)
		day = day.AddDate(0, 0, 1)
	}
	return days
}

type Runner struct {
	Base   *config.Config
	Store  *storage.Store
	Ranges ProfileRanges
	Rand   *rand.Rand
	// TitleFormat receives the formatted date.
	TitleFormat string
	// Workers bounds how many days are synthesized at once. Zero or one
	// runs the days sequentially.
	Workers int
}

type DayResult struct {
	Date  string
	RunID string
	Err   error
}

type plan struct {
	date     string
	seed     int64
	segments []curve.Descriptor
}

// Run synthesizes and persists one run per day. Profiles and seeds are
// drawn up front in date order, so output does not depend on Workers.
// A failing day is logged and skipped; the returned error joins every
// failure.
func (r *Runner) Run(ctx context.Context, from, to time.Time) ([]DayResult, error) {
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	days := Days(from, to)
	plans := make([]plan, len(days))
	for i, day := range days {
		segs, err := r.Ranges.Profile(r.Rand)
		if err != nil {
			return nil, err
		}
		plans[i] = plan{
			date:     day.Format(r.Base.Calendar.DateLayout),
			seed:     r.Rand.Int63(),
			segments: segs,
		}
	}

	results := make([]DayResult, len(plans))
	var g errgroup.Group
	g.SetLimit(max(r.Workers, 1))
	for i, p := range plans {
		results[i].Date = p.date
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].RunID, results[i].Err = r.runDay(p)
			if results[i].Err != nil {
				log.Errorw("day failed", "date", p.date, "error", results[i].Err)
			} else {
				log.Infow("day complete", "date", p.date, "run", results[i].RunID)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Date, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) runDay(p plan) (string, error) {
	titleFormat := r.TitleFormat
	if titleFormat == "" {
		titleFormat = "%s temperature"
	}

	cfg := *r.Base
	cfg.Date = p.date
	cfg.Title = fmt.Sprintf(titleFormat, p.date)
	cfg.Seed = p.seed
	cfg.SetDescriptors(p.segments)

	e := experiment.New(&cfg)
	res, err := e.Run()
	if err != nil {
		return "", err
	}
	runID, _, err := e.Persist(r.Store, res)
	return runID, err
}
