package clt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Cell is a single query entry: an observed binary value or an explicitly
//missing one.
type Cell uint8

const (
	//Zero is an observed value of 0.
	Zero Cell = iota
	//One is an observed value of 1.
	One
	//Missing marks a variable the query does not observe.
	Missing
)

//Observed reports whether the cell carries a value.
func (c Cell) Observed() bool { return c != Missing }

//Value returns the observed value as an integer in {0, 1}.
func (c Cell) Value() int { return int(c) }

//Query is one observation pattern over all d variables.
type Query []Cell

//QueriesFromDense converts an h-by-d matrix into a query batch. Entries
//must be 0, 1 or NaN; NaN marks a missing value.
func QueriesFromDense(raw *mat.Dense) ([]Query, error) {
	h, w := raw.Dims()
	queries := make([]Query, h)
	for p := 0; p < h; p++ {
		queries[p] = make(Query, w)
		for q := 0; q < w; q++ {
			switch v := raw.At(p, q); {
			case math.IsNaN(v):
				queries[p][q] = Missing
			case v == 0:
				queries[p][q] = Zero
			case v == 1:
				queries[p][q] = One
			default:
				return nil, fmt.Errorf("%w: query entry (%d,%d) = %v is not 0, 1 or NaN", ErrInvalidInput, p, q, v)
			}
		}
	}
	return queries, nil
}

//validateQuery checks the width of a query and that every cell is one of
//the three legal states.
func validateQuery(d int, query Query) error {
	if len(query) != d {
		return fmt.Errorf("%w: query has %d entries, want %d", ErrInvalidInput, len(query), d)
	}
	for q, c := range query {
		if c > Missing {
			return fmt.Errorf("%w: query entry %d = %d is not 0, 1 or missing", ErrInvalidInput, q, c)
		}
	}
	return nil
}

//fullyObserved reports whether a query has no missing entries.
func fullyObserved(query Query) bool {
	for _, c := range query {
		if !c.Observed() {
			return false
		}
	}
	return true
}
