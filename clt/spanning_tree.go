package clt

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/mat"
)

//SpanningTree selects the maximum-weight spanning tree of the complete
//graph whose edge weights are the entries of mi and orients it away from
//root by a breadth-first traversal. Weights are negated so that a minimum
//spanning tree of the negated graph is a maximum spanning tree of the
//original one. The result is a parent array with parents[root] equal to -1.
//Ties between equal-weight edges are resolved inside the spanning-tree
//algorithm and are not otherwise specified; any maximum-weight tree is a
//valid result.
func SpanningTree(mi mat.Symmetric, root int) ([]int, error) {
	d, _ := mi.Dims()
	if root < 0 || root >= d {
		return nil, fmt.Errorf("%w: root %d outside [0,%d)", ErrInvalidParameter, root, d)
	}

	full := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			full.SetWeightedEdge(full.NewWeightedEdge(simple.Node(i), simple.Node(j), -mi.At(i, j)))
		}
	}

	mst := simple.NewWeightedUndirectedGraph(0, 0)
	path.Prim(mst, full)

	parents := make([]int, d)
	for i := range parents {
		parents[i] = -1
	}

	bfs := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			child := int(e.To().ID())
			if child != root && parents[child] == -1 {
				parents[child] = int(e.From().ID())
			}
			return true
		},
	}
	bfs.Walk(mst, simple.Node(root), nil)

	return parents, nil
}

//PostOrder returns a leaves-to-root visitation order of the rooted tree
//described by parents: every child appears before its parent. This is the
//order variables are eliminated in.
func PostOrder(parents []int) []int {
	d := len(parents)
	children := make([][]int, d)
	root := 0
	for child, parent := range parents {
		if parent == -1 {
			root = child
			continue
		}
		children[parent] = append(children[parent], child)
	}

	//An explicit stack keeps the traversal independent of recursion depth
	//on deep trees.
	order := make([]int, 0, d)
	stack := append(make([]int, 0, d), root)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, node)
		stack = append(stack, children[node]...)
	}

	//The stack pass emits parents before their descendants; reversing it
	//puts every child before its parent.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
