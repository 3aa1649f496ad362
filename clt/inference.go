package clt

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Eliminator answers log-probability queries against a fitted tree by
//variable elimination, in time linear in the number of variables.
type Eliminator struct {
	parents []int
	order   []int
	cpt     LogCPT
}

//NewEliminator prepares an elimination engine for the given rooted tree and
//its log CPTs.
func NewEliminator(parents []int, cpt LogCPT) *Eliminator {
	return &Eliminator{parents: parents, order: PostOrder(parents), cpt: cpt}
}

//LogProb returns a column of natural-log probabilities, one per query. A
//query with missing entries yields the marginal probability of its observed
//entries. The whole batch fails on the first malformed query.
func (el *Eliminator) LogProb(queries []Query) (*mat.Dense, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: empty query batch", ErrInvalidInput)
	}
	d := len(el.parents)
	out := mat.NewDense(len(queries), 1, nil)
	for p, query := range queries {
		if err := validateQuery(d, query); err != nil {
			return nil, fmt.Errorf("query %d: %w", p, err)
		}
		if fullyObserved(query) {
			out.Set(p, 0, fullyObservedLogProb(el.parents, el.cpt, query))
		} else {
			out.Set(p, 0, eliminate(el.parents, el.order, el.cpt, query))
		}
	}
	return out, nil
}

//fullyObservedLogProb is the direct product rule over the tree: one CPT
//entry per variable, looked up at its parent's observed value, summed in
//the log domain. No elimination is needed.
func fullyObservedLogProb(parents []int, cpt LogCPT, query Query) float64 {
	logp := 0.0
	for v, parent := range parents {
		a := 0
		if parent != -1 {
			a = query[parent].Value()
		}
		logp += cpt[v][a][query[v].Value()]
	}
	return logp
}

//eliminate marginalizes the missing variables of one query leaves-to-root.
//own[v] is a pending factor over the value of v itself; only missing
//variables carry one. Walking the tree in post order, every variable either
//contributes a scalar to the running total or folds a length-2 factor over
//its missing parent's value into own[parent]:
//
//	observed v, observed parent  ->  scalar CPT entry
//	observed v, missing parent   ->  CPT column over the parent's value
//	missing v                    ->  log-sum-exp over the value of v of its
//	                                 CPT row (or rows) plus own[v]
//
//By the time a missing variable is eliminated, own[v] has absorbed the
//factors of all its children, so the variable's only remaining neighbor is
//its parent and the sum rule applies along that single edge. A query with
//every entry missing reduces to 0, the whole joint marginalized away.
func eliminate(parents []int, order []int, cpt LogCPT, query Query) float64 {
	//A fixed arena indexed by variable id; no per-query map allocation.
	own := make([][2]float64, len(parents))

	logp := 0.0
	for _, v := range order {
		parent := parents[v]
		parentObserved := parent == -1 || query[parent].Observed()

		switch {
		case query[v].Observed() && parentObserved:
			a := 0
			if parent != -1 {
				a = query[parent].Value()
			}
			logp += cpt[v][a][query[v].Value()]
		case query[v].Observed():
			b := query[v].Value()
			own[parent][0] += cpt[v][0][b]
			own[parent][1] += cpt[v][1][b]
		case parentObserved:
			a := 0
			if parent != -1 {
				a = query[parent].Value()
			}
			logp += logSumExpPair(cpt[v][a][0]+own[v][0], cpt[v][a][1]+own[v][1])
		default:
			for a := 0; a < 2; a++ {
				own[parent][a] += logSumExpPair(cpt[v][a][0]+own[v][0], cpt[v][a][1]+own[v][1])
			}
		}
	}
	return logp
}

//logSumExpPair is a numerically stable two-element log-sum-exp.
func logSumExpPair(x, y float64) float64 {
	return floats.LogSumExp([]float64{x, y})
}
