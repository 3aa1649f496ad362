package clt

import (
	"fmt"
	"math"

	"gorgonia.org/tensor"
)

//LogCPT holds the natural-log conditional probability table of every
//variable given its parent, indexed [variable][parent value][own value].
//The root variable carries its marginal in both parent-value rows so that
//every variable shares the 2x2 shape.
type LogCPT [][2][2]float64

//LogParameters estimates smoothed log CPTs for the given rooted tree. Each
//conditional cell receives alpha; the two root cells receive 2*alpha each,
//which keeps the total smoothing mass per variable at 4*alpha.
func LogParameters(ds *Dataset, parents []int, alpha float64) (LogCPT, error) {
	if alpha <= 0 {
		return nil, fmt.Errorf("%w: smoothing constant %v must be positive", ErrInvalidParameter, alpha)
	}
	n, d := ds.Dims()
	if len(parents) != d {
		return nil, fmt.Errorf("%w: parent array has %d entries, want %d", ErrInvalidInput, len(parents), d)
	}

	cpt := make(LogCPT, d)
	for i := 0; i < d; i++ {
		parent := parents[i]

		if parent == -1 {
			var counts [2]float64
			for p := 0; p < n; p++ {
				counts[ds.At(p, i)]++
			}
			total := counts[0] + counts[1] + 4*alpha
			for b := 0; b < 2; b++ {
				lp := math.Log((counts[b] + 2*alpha) / total)
				cpt[i][0][b] = lp
				cpt[i][1][b] = lp
			}
			continue
		}

		var counts [2][2]float64
		for p := 0; p < n; p++ {
			counts[ds.At(p, parent)][ds.At(p, i)]++
		}
		for a := 0; a < 2; a++ {
			rowTotal := counts[a][0] + counts[a][1] + 2*alpha
			for b := 0; b < 2; b++ {
				cpt[i][a][b] = math.Log((counts[a][b] + alpha) / rowTotal)
			}
		}
	}
	return cpt, nil
}

//Tensor packs the table into a (d, 2, 2) dense tensor for handoff to
//numeric consumers.
func (cpt LogCPT) Tensor() *tensor.Dense {
	backing := make([]float64, 0, 4*len(cpt))
	for _, block := range cpt {
		backing = append(backing, block[0][0], block[0][1], block[1][0], block[1][1])
	}
	return tensor.New(tensor.WithShape(len(cpt), 2, 2), tensor.WithBacking(backing))
}
