package clt

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Exhauster answers the same queries as Eliminator by enumerating every
//completion of the missing variables and combining the joint probabilities
//with log-sum-exp. The cost is exponential in the number of missing
//entries; it serves as a correctness oracle, not a production path.
type Exhauster struct {
	parents []int
	cpt     LogCPT
}

//NewExhauster prepares a brute-force inference engine for the given rooted
//tree and its log CPTs.
func NewExhauster(parents []int, cpt LogCPT) *Exhauster {
	return &Exhauster{parents: parents, cpt: cpt}
}

//LogProb returns a column of natural-log probabilities, one per query. The
//whole batch fails on the first malformed query.
func (ex *Exhauster) LogProb(queries []Query) (*mat.Dense, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: empty query batch", ErrInvalidInput)
	}
	d := len(ex.parents)
	out := mat.NewDense(len(queries), 1, nil)
	for p, query := range queries {
		if err := validateQuery(d, query); err != nil {
			return nil, fmt.Errorf("query %d: %w", p, err)
		}
		out.Set(p, 0, ex.enumerate(query))
	}
	return out, nil
}

//enumerate fills the missing entries with all 2^k value combinations and
//reduces the fully observed joints with log-sum-exp.
func (ex *Exhauster) enumerate(query Query) float64 {
	var missing []int
	for q, c := range query {
		if !c.Observed() {
			missing = append(missing, q)
		}
	}

	filled := make(Query, len(query))
	copy(filled, query)

	terms := make([]float64, 0, 1<<len(missing))
	for bits := 0; bits < 1<<len(missing); bits++ {
		for k, q := range missing {
			filled[q] = Cell(bits >> k & 1)
		}
		terms = append(terms, fullyObservedLogProb(ex.parents, ex.cpt, filled))
	}
	return floats.LogSumExp(terms)
}
