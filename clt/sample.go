package clt

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

//Sampler draws independent samples from the joint distribution encoded by a
//rooted tree and its log CPTs.
type Sampler struct {
	parents []int
	cpt     LogCPT
	rng     *rand.Rand
}

//NewSampler prepares an ancestral sampler. The randomness source is
//supplied by the caller so that runs are reproducible.
func NewSampler(parents []int, cpt LogCPT, rng *rand.Rand) *Sampler {
	return &Sampler{parents: parents, cpt: cpt, rng: rng}
}

//Sample returns an n-by-d matrix of binary draws. The root is drawn from
//its marginal; the variable set is then re-scanned, assigning any variable
//whose parent already has a value, until every variable is assigned.
func (s *Sampler) Sample(n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count %d must be positive", ErrInvalidParameter, n)
	}
	d := len(s.parents)
	out := mat.NewDense(n, d, nil)
	values := make([]int, d)

	for p := 0; p < n; p++ {
		for i := range values {
			values[i] = -1
		}

		assigned := 0
		for i, parent := range s.parents {
			if parent == -1 {
				values[i] = s.bernoulli(math.Exp(s.cpt[i][0][1]))
				assigned++
			}
		}
		for assigned < d {
			for i, parent := range s.parents {
				if parent == -1 || values[i] != -1 || values[parent] == -1 {
					continue
				}
				values[i] = s.bernoulli(math.Exp(s.cpt[i][values[parent]][1]))
				assigned++
			}
		}

		for i, v := range values {
			out.Set(p, i, float64(v))
		}
	}
	return out, nil
}

//bernoulli draws 1 with the given probability.
func (s *Sampler) bernoulli(prob float64) int {
	if s.rng.Float64() < prob {
		return 1
	}
	return 0
}
