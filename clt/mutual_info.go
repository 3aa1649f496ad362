package clt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//MutualInformation computes the d-by-d symmetric matrix of smoothed
//pairwise mutual information over the dataset. For every unordered pair of
//variables the samples are counted into a 2x2 joint table, alpha is added
//to each of the four cells and the table is normalized by n + 4*alpha;
//marginals are the row and column sums of that table. The diagonal is left
//at zero, self-information plays no part in tree selection.
func MutualInformation(ds *Dataset, alpha float64) (*mat.SymDense, error) {
	if alpha <= 0 {
		return nil, fmt.Errorf("%w: smoothing constant %v must be positive", ErrInvalidParameter, alpha)
	}
	n, d := ds.Dims()
	mi := mat.NewSymDense(d, nil)

	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			var joint [2][2]float64
			for p := 0; p < n; p++ {
				joint[ds.At(p, i)][ds.At(p, j)]++
			}

			norm := float64(n) + 4*alpha
			var pij [2][2]float64
			var pi, pj [2]float64
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					pij[a][b] = (joint[a][b] + alpha) / norm
					pi[a] += pij[a][b]
					pj[b] += pij[a][b]
				}
			}

			v := 0.0
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					v += pij[a][b] * (math.Log(pij[a][b]) - math.Log(pi[a]) - math.Log(pj[b]))
				}
			}
			mi.SetSym(i, j, v)
		}
	}
	return mi, nil
}
