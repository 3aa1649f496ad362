package clt

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func TestReadCSVDataset(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "train.csv")
	content := "0,1,0\n1,1,1\n0,0,0\n"
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadCSVDataset(fileName)
	if err != nil {
		t.Fatal(err)
	}
	n, d := ds.Dims()
	if n != 3 || d != 3 {
		t.Fatalf("unexpected dimensions %dx%d", n, d)
	}
	if ds.At(0, 1) != 1 || ds.At(2, 2) != 0 {
		t.Fatal("dataset entries do not match the file")
	}
}

func TestReadCSVEmptyFieldBecomesNaN(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "marginals.csv")
	content := "0,,1\n,1,\n"
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := ReadCSV(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(raw.At(0, 1)) || !math.IsNaN(raw.At(1, 0)) || !math.IsNaN(raw.At(1, 2)) {
		t.Fatal("empty fields were not mapped to NaN")
	}
	if raw.At(0, 0) != 0 || raw.At(0, 2) != 1 || raw.At(1, 1) != 1 {
		t.Fatal("numeric fields do not match the file")
	}
}

func TestReadCSVDatasetRejectsNonBinary(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(fileName, []byte("0,1\n2,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSVDataset(fileName); err == nil {
		t.Fatal("non-binary csv accepted")
	}
}

func TestReadNpyRoundTrip(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "data.npy")
	src := mat.NewDense(2, 3, []float64{0, 1, 1, 1, 0, 0})

	f, err := os.Create(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if err := npyio.Write(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadNpyDataset(fileName)
	if err != nil {
		t.Fatal(err)
	}
	n, d := ds.Dims()
	if n != 2 || d != 3 {
		t.Fatalf("unexpected dimensions %dx%d", n, d)
	}
	for p := 0; p < n; p++ {
		for q := 0; q < d; q++ {
			if float64(ds.At(p, q)) != src.At(p, q) {
				t.Fatalf("entry (%d,%d) = %d, want %v", p, q, ds.At(p, q), src.At(p, q))
			}
		}
	}
}
