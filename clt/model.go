package clt

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

//DefaultAlpha is the smoothing constant used when ModelParams leaves Alpha
//at zero.
const DefaultAlpha = 0.01

//ModelParams collects the arguments required to fit a Model.
type ModelParams struct {
	//Data is the binary sample matrix the model is learned from.
	Data *Dataset
	//Root is the variable the tree is oriented from. When nil, a root is
	//drawn uniformly from the variable range once and kept for the model's
	//lifetime.
	Root *int
	//Alpha is the additive smoothing constant. Zero selects DefaultAlpha;
	//negative values are rejected.
	Alpha float64
	//Rand supplies all randomness: the default root draw and sampling.
	Rand *rand.Rand
}

//Model is a fitted Chow-Liu tree over binary variables: the mutual
//information matrix the structure was selected from, the rooted tree, its
//log CPTs and the engines answering queries against them. All parts are
//computed once at construction from the immutable dataset.
type Model struct {
	data    *Dataset
	alpha   float64
	root    int
	mi      *mat.SymDense
	parents []int
	cpt     LogCPT
	elim    *Eliminator
	exh     *Exhauster
	sampler *Sampler
}

//NewModel learns the tree structure and parameters from the dataset. The
//pipeline is mutual information, then spanning tree, then log CPTs; each
//step is a pure function of the previous ones and the model only caches
//their results.
func NewModel(params ModelParams) (*Model, error) {
	if params.Data == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidInput)
	}
	if params.Rand == nil {
		return nil, fmt.Errorf("%w: nil randomness source", ErrInvalidParameter)
	}
	alpha := params.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}

	_, d := params.Data.Dims()
	root := 0
	if params.Root != nil {
		root = *params.Root
	} else {
		root = params.Rand.Intn(d)
	}

	mi, err := MutualInformation(params.Data, alpha)
	if err != nil {
		return nil, err
	}
	parents, err := SpanningTree(mi, root)
	if err != nil {
		return nil, err
	}
	cpt, err := LogParameters(params.Data, parents, alpha)
	if err != nil {
		return nil, err
	}

	return &Model{
		data:    params.Data,
		alpha:   alpha,
		root:    root,
		mi:      mi,
		parents: parents,
		cpt:     cpt,
		elim:    NewEliminator(parents, cpt),
		exh:     NewExhauster(parents, cpt),
		sampler: NewSampler(parents, cpt, params.Rand),
	}, nil
}

//Root returns the root variable index.
func (m *Model) Root() int { return m.root }

//Tree returns the parent array of the learned tree; the root's entry is -1.
func (m *Model) Tree() []int {
	parents := make([]int, len(m.parents))
	copy(parents, m.parents)
	return parents
}

//MutualInfo returns the pairwise mutual information matrix the structure
//was selected from.
func (m *Model) MutualInfo() mat.Symmetric { return m.mi }

//LogParams returns the (d, 2, 2) tensor of natural-log CPTs, indexed
//[variable][parent value][own value]. The root's two rows are identical.
func (m *Model) LogParams() *tensor.Dense { return m.cpt.Tensor() }

//LogProb returns one natural-log probability per query. With exhaustive
//set, the brute-force enumeration path answers instead of variable
//elimination; both produce the same values.
func (m *Model) LogProb(queries []Query, exhaustive bool) (*mat.Dense, error) {
	if exhaustive {
		return m.exh.LogProb(queries)
	}
	return m.elim.LogProb(queries)
}

//Sample draws n independent samples from the fitted distribution.
func (m *Model) Sample(n int) (*mat.Dense, error) {
	return m.sampler.Sample(n)
}

//AverageLogLikelihood is the mean log-probability the model assigns to the
//rows of a matrix. Entries may be NaN to mark missing values.
func (m *Model) AverageLogLikelihood(raw *mat.Dense, exhaustive bool) (float64, error) {
	queries, err := QueriesFromDense(raw)
	if err != nil {
		return 0, err
	}
	lp, err := m.LogProb(queries, exhaustive)
	if err != nil {
		return 0, err
	}
	return stat.Mean(mat.Col(nil, 0, lp), nil), nil
}
