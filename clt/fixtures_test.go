package clt

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//perfectCorrelationDataset is four samples of three perfectly correlated
//variables.
func perfectCorrelationDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewDataset(mat.NewDense(4, 3, []float64{
		0, 0, 0,
		1, 1, 1,
		0, 0, 0,
		1, 1, 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

//chainDataset draws n samples of five variables generated along a chain
//with moderate flip noise, so that every pair carries some dependence.
func chainDataset(t *testing.T, n int, seed int64) *Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	raw := mat.NewDense(n, 5, nil)
	flip := func(v int, prob float64) int {
		if rng.Float64() < prob {
			return 1 - v
		}
		return v
	}
	for p := 0; p < n; p++ {
		x0 := 0
		if rng.Float64() < 0.4 {
			x0 = 1
		}
		x1 := flip(x0, 0.2)
		x2 := flip(x1, 0.3)
		x3 := flip(x0, 0.25)
		x4 := flip(x3, 0.4)
		for q, v := range []int{x0, x1, x2, x3, x4} {
			raw.Set(p, q, float64(v))
		}
	}
	ds, err := NewDataset(raw)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

//fitModel fits a model on ds with a fixed root and seed.
func fitModel(t *testing.T, ds *Dataset, root int, alpha float64, seed int64) *Model {
	t.Helper()
	model, err := NewModel(ModelParams{
		Data:  ds,
		Root:  &root,
		Alpha: alpha,
		Rand:  rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return model
}

//allObservedQueries turns every dataset row into a fully observed query.
func allObservedQueries(ds *Dataset) []Query {
	n, d := ds.Dims()
	queries := make([]Query, n)
	for p := 0; p < n; p++ {
		queries[p] = make(Query, d)
		for q := 0; q < d; q++ {
			queries[p][q] = Cell(ds.At(p, q))
		}
	}
	return queries
}

//allQueries enumerates every query of width d over the three cell states.
func allQueries(d int) []Query {
	total := 1
	for i := 0; i < d; i++ {
		total *= 3
	}
	queries := make([]Query, total)
	for k := 0; k < total; k++ {
		query := make(Query, d)
		rest := k
		for q := 0; q < d; q++ {
			query[q] = Cell(rest % 3)
			rest /= 3
		}
		queries[k] = query
	}
	return queries
}
