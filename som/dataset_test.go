package som_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jdrub/pysom/som"
)

func TestReadDataSetParsesHeaderlessTable(t *testing.T) {
	in := "1,2.5,3\n-4,0, 7.25\n1e2,-0.5,0\n"

	ds, err := som.ReadDataSet(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	expected := []som.DataVector{
		{1, 2.5, 3},
		{-4, 0, 7.25},
		{100, -0.5, 0},
	}
	if !reflect.DeepEqual(ds.Vectors, expected) {
		t.Fatalf("Expected vectors to be %v, but they are %v", expected, ds.Vectors)
	}
}

func TestReadDataSetRejectsNonNumericValues(t *testing.T) {
	in := "1,2\n3,four\n"

	_, err := som.ReadDataSet(strings.NewReader(in))
	if !errors.Is(err, som.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestReadDataSetRejectsIrregularRows(t *testing.T) {
	in := "1,2,3\n4,5\n"

	_, err := som.ReadDataSet(strings.NewReader(in))
	if !errors.Is(err, som.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestReadDataSetFileReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("1,2\n3,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := som.ReadDataSetFile(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []som.DataVector{{1, 2}, {3, 4}}
	if !reflect.DeepEqual(ds.Vectors, expected) {
		t.Fatalf("Expected vectors to be %v, but they are %v", expected, ds.Vectors)
	}
}

func TestDataSetShuffleKeepsAllVectors(t *testing.T) {
	ds := &som.DataSet{}
	for i := 0; i < 100; i++ {
		ds.AddRaw(float64(i))
	}

	ds.Shuffle(rand.New(rand.NewSource(1)))

	if ds.Len() != 100 {
		t.Fatalf("Expected 100 vectors after shuffling, got %d", ds.Len())
	}
	seen := make([]int, ds.Len())
	for _, v := range ds.Vectors {
		seen[int(v[0])]++
	}
	for i, count := range seen {
		if count != 1 {
			t.Fatalf("Expected vector %d to appear exactly once, but it appears %d times", i, count)
		}
	}
}
