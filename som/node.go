package som

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Node is a single unit of the map. It lives in two spaces at once:
// HighCoords place it among the input data, LowCoords pin it to a cell
// of the output grid. LowCoords are set at creation and the grid never
// moves; training only pulls HighCoords around.
type Node struct {
	HighCoords []float64
	LowCoords  []float64
	Index      int
}

// SquareDistanceHigh returns the squared Euclidean distance between the
// node's high-dimensional coordinates and point.
func (n *Node) SquareDistanceHigh(point []float64) (float64, error) {
	if len(point) != len(n.HighCoords) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "point has %d values, node has %d", len(point), len(n.HighCoords))
	}
	return squareDistance(n.HighCoords, point), nil
}

// SquareDistanceLow returns the squared Euclidean distance between the
// node's grid coordinates and point.
func (n *Node) SquareDistanceLow(point []float64) (float64, error) {
	if len(point) != len(n.LowCoords) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "point has %d values, node has %d", len(point), len(n.LowCoords))
	}
	return squareDistance(n.LowCoords, point), nil
}

// DistanceHigh returns the Euclidean distance between the node's
// high-dimensional coordinates and point.
func (n *Node) DistanceHigh(point []float64) (float64, error) {
	d2, err := n.SquareDistanceHigh(point)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(d2), nil
}

// DistanceLow returns the Euclidean distance between the node's grid
// coordinates and point.
func (n *Node) DistanceLow(point []float64) (float64, error) {
	d2, err := n.SquareDistanceLow(point)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(d2), nil
}

// TranslateHigh moves the node in the high-dimensional space by delta,
// in place. This is the only mutation a node undergoes after creation.
func (n *Node) TranslateHigh(delta []float64) error {
	if len(delta) != len(n.HighCoords) {
		return errors.Wrapf(ErrDimensionMismatch, "delta has %d values, node has %d", len(delta), len(n.HighCoords))
	}
	floats.Add(n.HighCoords, delta)
	return nil
}

// TranslateLow moves the node in the low-dimensional space by delta, in
// place. The training algorithm never calls it, the grid is fixed; it
// exists as the symmetric counterpart of TranslateHigh.
func (n *Node) TranslateLow(delta []float64) error {
	if len(delta) != len(n.LowCoords) {
		return errors.Wrapf(ErrDimensionMismatch, "delta has %d values, node has %d", len(delta), len(n.LowCoords))
	}
	floats.Add(n.LowCoords, delta)
	return nil
}

func squareDistance(x, y []float64) float64 {
	var sum float64
	for i := range x {
		d := x[i] - y[i]
		sum += d * d
	}
	return sum
}
