// Package montecarlo samples a triangular outcome distribution and
// reduces the draws to summary statistics.
package montecarlo

import (
	"math"
	"math/rand"
	"sort"

	"github.com/decisionlab/compass/internal/models"
)

// DefaultTrials is the number of samples drawn per simulation.
const DefaultTrials = 10000

// Simulate draws trials samples from a triangular distribution with
// the given minimum, mode, and maximum, using a non-deterministic
// random source. Results vary run to run but converge for large
// trial counts.
func Simulate(min, mode, max float64, trials int) models.SimulationResult {
	return SimulateWithSeed(min, mode, max, trials, -1)
}

// SimulateWithSeed is like Simulate but accepts a seed for
// reproducibility. A negative seed uses a non-deterministic source.
//
// Degenerate ranges never fail: when min >= max the result collapses
// to the mode with p10=min and p90=max, and a mode outside [min, max]
// is clamped before sampling.
func SimulateWithSeed(min, mode, max float64, trials int, seed int64) models.SimulationResult {
	if min >= max {
		probLoss := 0.0
		if min < 0 {
			probLoss = 1.0
		}
		return models.SimulationResult{
			Mean:     mode,
			Median:   mode,
			P10:      min,
			P90:      max,
			ProbLoss: probLoss,
		}
	}

	if mode < min {
		mode = min
	}
	if mode > max {
		mode = max
	}
	if trials <= 0 {
		trials = DefaultTrials
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	// Inverse-CDF sampling: split at the mode's cumulative mass.
	span := max - min
	split := (mode - min) / span

	samples := make([]float64, trials)
	losses := 0
	sum := 0.0
	for i := range samples {
		u := rng.Float64()
		var v float64
		if u < split {
			v = min + math.Sqrt(u*span*(mode-min))
		} else {
			v = max - math.Sqrt((1-u)*span*(max-mode))
		}
		samples[i] = v
		sum += v
		if v < 0 {
			losses++
		}
	}

	sort.Float64s(samples)

	return models.SimulationResult{
		Mean:     sum / float64(trials),
		Median:   samples[trials/2],
		P10:      samples[int(math.Floor(float64(trials)*0.1))],
		P90:      samples[int(math.Floor(float64(trials)*0.9))],
		ProbLoss: float64(losses) / float64(trials),
	}
}
