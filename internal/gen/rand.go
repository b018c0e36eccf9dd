package gen

import (
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Rand is the shared sampling stream for one pipeline run. Every stage draws
// from the same underlying source, and the pipeline consumes it in a fixed,
// documented order, so a given seed reproduces the dataset exactly.
type Rand struct {
	src *exprand.Rand
}

// NewRand returns a stream seeded deterministically from seed.
func NewRand(seed uint64) *Rand {
	return &Rand{src: exprand.New(exprand.NewSource(seed))}
}

// Normal draws from N(mu, sigma).
func (r *Rand) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// Uniform draws from U[min, max). min == max returns min; a draw is still
// consumed so stream position stays independent of parameter values.
func (r *Rand) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: r.src}.Rand()
}

// LogNormal draws exp(N(mu, sigma)).
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// LogNormal3 draws gamma + exp(N(mu, sigma)), the 3-parameter lognormal
// used for durations and lengths of stay. Samples are always > gamma.
func (r *Rand) LogNormal3(mu, sigma, gamma float64) float64 {
	return gamma + r.LogNormal(mu, sigma)
}

// Dirichlet draws a non-negative vector summing to 1 from Dirichlet(alpha).
// All alpha components must be > 0; callers validate before drawing.
func (r *Rand) Dirichlet(alpha []float64) []float64 {
	return distmv.NewDirichlet(alpha, r.src).Rand(nil)
}

// Categorical returns a sampler of indices proportional to weights. Weights
// need not be normalized but must be non-negative with positive sum.
func (r *Rand) Categorical(weights []float64) distuv.Categorical {
	return distuv.NewCategorical(weights, r.src)
}
