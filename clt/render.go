package clt

import (
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

//DrawGraph builds a graphviz graph of the rooted tree: one node per
//variable, one edge per parent link, the root drawn as a box.
func DrawGraph(parents []int) (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]*cgraph.Node, len(parents))
	for i, parent := range parents {
		node, err := graph.CreateNode(fmt.Sprintf("X%d", i))
		if err != nil {
			return nil, nil, err
		}
		if parent == -1 {
			node.Set("shape", "box")
		}
		nodes[i] = node
	}

	for child, parent := range parents {
		if parent == -1 {
			continue
		}
		if _, err := graph.CreateEdge("", nodes[parent], nodes[child]); err != nil {
			return nil, nil, err
		}
	}
	return graphViz, graph, nil
}

//RenderTree renders the learned tree into a picture file. The figure type
//is one of png, svg or jpg.
func RenderTree(parents []int, figureType, fileName string) error {
	graphvizType, ok := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
	}[figureType]
	if !ok {
		return fmt.Errorf("%w: unknown figure type %q", ErrInvalidParameter, figureType)
	}

	graphViz, graph, err := DrawGraph(parents)
	if err != nil {
		return err
	}
	return graphViz.RenderFilename(graph, graphvizType, fileName)
}
