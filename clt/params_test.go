package clt

import (
	"math"
	"testing"
)

func TestLogParametersRowsNormalized(t *testing.T) {
	ds := chainDataset(t, 300, 3)
	mi, err := MutualInformation(ds, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	parents, err := SpanningTree(mi, 0)
	if err != nil {
		t.Fatal(err)
	}

	cpt, err := LogParameters(ds, parents, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	for i, block := range cpt {
		for a := 0; a < 2; a++ {
			sum := math.Exp(block[a][0]) + math.Exp(block[a][1])
			if math.Abs(sum-1) > 1e-9 {
				t.Fatalf("variable %d row %d sums to %v", i, a, sum)
			}
		}
	}
}

func TestLogParametersRootRowsIdentical(t *testing.T) {
	ds := chainDataset(t, 300, 3)
	mi, err := MutualInformation(ds, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	parents, err := SpanningTree(mi, 4)
	if err != nil {
		t.Fatal(err)
	}

	cpt, err := LogParameters(ds, parents, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	root := cpt[4]
	if root[0] != root[1] {
		t.Fatalf("root rows differ: %v vs %v", root[0], root[1])
	}
}

func TestLogParametersNearDeterministic(t *testing.T) {
	ds := perfectCorrelationDataset(t)
	mi, err := MutualInformation(ds, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	parents, err := SpanningTree(mi, 0)
	if err != nil {
		t.Fatal(err)
	}

	cpt, err := LogParameters(ds, parents, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	//The root marginal is exactly one half; every conditional follows its
	//parent with probability 2.01/2.02.
	if v := cpt[0][0][0]; math.Abs(v-math.Log(0.5)) > 1e-12 {
		t.Fatalf("root marginal log-probability %v, want %v", v, math.Log(0.5))
	}
	follow := math.Log(2.01 / 2.02)
	for i, parent := range parents {
		if parent == -1 {
			continue
		}
		for a := 0; a < 2; a++ {
			if v := cpt[i][a][a]; math.Abs(v-follow) > 1e-12 {
				t.Fatalf("variable %d conditional %v, want %v", i, v, follow)
			}
		}
	}
}

func TestLogParametersRejectsBadInput(t *testing.T) {
	ds := perfectCorrelationDataset(t)
	if _, err := LogParameters(ds, []int{-1, 0, 1}, 0); err == nil {
		t.Fatal("alpha 0 accepted")
	}
	if _, err := LogParameters(ds, []int{-1, 0}, 0.01); err == nil {
		t.Fatal("short parent array accepted")
	}
}
