package som

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteGrid writes one line per node to w, in index order. Each line
// reports the node's index, grid coordinates and high-dimensional
// value; the value is scaled back to original data units when
// normalization is on.
func (m *Map) WriteGrid(w io.Writer) error {
	for _, n := range m.Nodes {
		value := n.HighCoords
		if m.params != nil {
			unnormalized, err := m.Unnormalize(n.HighCoords)
			if err != nil {
				return err
			}
			value = unnormalized
		}
		if _, err := fmt.Fprintf(w, "Node %d at %v has value %v\n", n.Index, n.LowCoords, value); err != nil {
			return errors.Wrap(err, "writing grid report")
		}
	}
	return nil
}

// WriteGridFile writes the grid report to the file at path, creating or
// truncating it.
func (m *Map) WriteGridFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating grid report %s", path)
	}
	defer f.Close()
	return m.WriteGrid(f)
}
