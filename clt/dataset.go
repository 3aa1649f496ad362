package clt

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//Dataset is an n-by-d matrix of binary samples. Rows are independent
//observations, columns are variables. A Dataset is never mutated after
//construction.
type Dataset struct {
	samples *mat.Dense
	n, d    int
}

//NewDataset validates raw and wraps it into a Dataset. Every entry must be
//exactly 0 or 1.
func NewDataset(raw *mat.Dense) (*Dataset, error) {
	n, d := raw.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("%w: empty dataset (%d x %d)", ErrInvalidInput, n, d)
	}
	for p := 0; p < n; p++ {
		for q := 0; q < d; q++ {
			if v := raw.At(p, q); v != 0 && v != 1 {
				return nil, fmt.Errorf("%w: dataset entry (%d,%d) = %v is not binary", ErrInvalidInput, p, q, v)
			}
		}
	}
	return &Dataset{samples: raw, n: n, d: d}, nil
}

//Dims returns the number of samples and the number of variables.
func (ds *Dataset) Dims() (n, d int) { return ds.n, ds.d }

//At returns the value of variable q in sample p as an integer in {0, 1}.
func (ds *Dataset) At(p, q int) int { return int(ds.samples.At(p, q)) }

//ReadNpyDataset loads a binary dataset from a .npy file of shape (n, d).
func ReadNpyDataset(fileName string) (*Dataset, error) {
	raw, err := ReadNpy(fileName)
	if err != nil {
		return nil, err
	}
	return NewDataset(raw)
}

//ReadNpy reads the content of a npy file into a dense matrix.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, err
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, err
	}
	return denseMat, nil
}

//ReadCSVDataset loads a binary dataset from a comma-separated file with one
//sample per row and no header.
func ReadCSVDataset(fileName string) (*Dataset, error) {
	raw, err := ReadCSV(fileName)
	if err != nil {
		return nil, err
	}
	return NewDataset(raw)
}

//ReadCSV reads a headerless numeric csv file into a dense matrix. Empty
//fields become NaN, which the query layer treats as a missing value.
func ReadCSV(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func() { HandleError(f.Close()) }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s holds no rows", ErrInvalidInput, fileName)
	}

	h, w := len(records), len(records[0])
	denseMat := mat.NewDense(h, w, nil)
	for p, record := range records {
		if len(record) != w {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrInvalidInput, p, len(record), w)
		}
		for q, field := range record {
			if field == "" {
				denseMat.Set(p, q, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d field %d: %v", ErrInvalidInput, p, q, err)
			}
			denseMat.Set(p, q, v)
		}
	}
	return denseMat, nil
}
