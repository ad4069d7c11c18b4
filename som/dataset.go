package som

import (
	"encoding/csv"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type DataVector []float64

type DataSet struct {
	Vectors []DataVector
}

func (ds *DataSet) Add(vector DataVector) {
	if len(ds.Vectors) != 0 && ds.Width() != len(vector) {
		panic("data set must contain vectors of the same length")
	}
	ds.Vectors = append(ds.Vectors, vector)
}

func (ds *DataSet) AddRaw(vector ...float64) {
	ds.Add(DataVector(vector))
}

func (ds *DataSet) Len() int {
	return len(ds.Vectors)
}

func (ds *DataSet) Width() int {
	if ds.Len() == 0 {
		panic("data set contains no elements")
	}
	return len(ds.Vectors[0])
}

// Shuffle reorders the vectors using r as the randomness source.
func (ds *DataSet) Shuffle(r *rand.Rand) {
	shuffled := make([]DataVector, ds.Len())
	for i, j := range r.Perm(ds.Len()) {
		shuffled[i] = ds.Vectors[j]
	}
	ds.Vectors = shuffled
}

// ReadDataSet parses a headerless CSV table of numbers. Every row must
// have the same number of fields and every field must parse as a real
// number; anything else fails with ErrInvalidInput.
func ReadDataSet(r io.Reader) (*DataSet, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	ds := &DataSet{}
	for i, record := range records {
		vector := make(DataVector, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidInput, "row %d column %d: %q is not a number", i, j, field)
			}
			vector[j] = v
		}
		ds.Vectors = append(ds.Vectors, vector)
	}
	return ds, nil
}

// ReadDataSetFile reads a CSV data set from the file at path.
func ReadDataSetFile(path string) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening data set %s", path)
	}
	defer f.Close()

	ds, err := ReadDataSet(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading data set %s", path)
	}
	return ds, nil
}
