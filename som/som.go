// Package som provides an implementation of Self-Organizing Map.
// See https://en.wikipedia.org/wiki/Self-organizing_map.
//
// SOM - Self-Organizing Map
// BMU - Best Matching Unit
package som

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Config carries the construction parameters of a Map.
type Config struct {
	// NNodes is the target node count. The grid rounds it down to the
	// nearest perfect square.
	NNodes int

	// Dimension is the low-dimensional output dimension. Only 2 is
	// supported; the grid initializer has no layout for anything else.
	Dimension int

	// Normalize enables z-score normalization of the input data.
	Normalize bool

	// LearningRate is the initial learning rate, decayed over training.
	LearningRate float64

	// Workers bounds the number of goroutines used by the per-step node
	// update pass. Values below 2 keep the pass sequential.
	Workers int

	// Rand is the randomness source for node initialization and data
	// sampling. When nil a time-seeded source is used.
	Rand *rand.Rand
}

// DefaultConfig returns the configuration the original model was run
// with: 100 nodes, a 2-D grid, normalization on, learning rate 0.1.
func DefaultConfig() Config {
	return Config{
		NNodes:       100,
		Dimension:    2,
		Normalize:    true,
		LearningRate: 0.1,
		Workers:      1,
	}
}

// Map owns the input data and a square grid of nodes, and carries the
// training and classification algorithms. When normalization is on the
// data set is rewritten in place to z-scores at construction.
type Map struct {
	Nodes []*Node

	data    *DataSet
	side    int
	highDim int
	lowDim  int
	params  []normParam // nil when normalization is off
	learn0  float64
	workers int
	rnd     *rand.Rand
}

// normParam holds the mean and sample standard deviation of one input
// dimension, kept to transform points in and out of the map's scale.
type normParam struct {
	mean, std float64
}

// New builds a map over set. The set is validated, optionally
// normalized in place, and covered with a side*side node grid where
// side = floor(NNodes^(1/2)).
func New(set *DataSet, cfg Config) (*Map, error) {
	if set == nil || set.Len() == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty data set")
	}
	highDim := len(set.Vectors[0])
	for i, v := range set.Vectors {
		if len(v) != highDim {
			return nil, errors.Wrapf(ErrInvalidInput, "row %d has %d values, want %d", i, len(v), highDim)
		}
	}
	if cfg.NNodes <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "nnodes must be positive, got %d", cfg.NNodes)
	}
	if cfg.Dimension <= 0 || cfg.Dimension >= highDim {
		return nil, errors.Wrapf(ErrInvalidInput, "dimension %d is out of range (0, %d)", cfg.Dimension, highDim)
	}
	if cfg.Dimension != 2 {
		return nil, errors.Wrapf(ErrInvalidInput, "only 2-dimensional grids are supported, got %d", cfg.Dimension)
	}
	if cfg.LearningRate <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "learning rate must be positive, got %v", cfg.LearningRate)
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	m := &Map{
		data:    set,
		side:    int(math.Pow(float64(cfg.NNodes), 1/float64(cfg.Dimension))),
		highDim: highDim,
		lowDim:  cfg.Dimension,
		learn0:  cfg.LearningRate,
		workers: workers,
		rnd:     rnd,
	}
	if cfg.Normalize {
		if err := m.normalizeData(); err != nil {
			return nil, err
		}
	}
	m.initializeGrid()
	return m, nil
}

// Side returns the side length of the node grid.
func (m *Map) Side() int { return m.side }

// HighDimension returns the input space dimension.
func (m *Map) HighDimension() int { return m.highDim }

// LowDimension returns the grid space dimension.
func (m *Map) LowDimension() int { return m.lowDim }

// Normalized reports whether the map transforms data to z-scores.
func (m *Map) Normalized() bool { return m.params != nil }

func (m *Map) normalizeData() error {
	m.params = make([]normParam, m.highDim)
	column := make([]float64, m.data.Len())
	for d := 0; d < m.highDim; d++ {
		for i, row := range m.data.Vectors {
			column[i] = row[d]
		}
		mean := stat.Mean(column, nil)
		std := stat.StdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			return errors.Wrapf(ErrDegenerateInput, "dimension %d has zero variance", d)
		}
		m.params[d] = normParam{mean: mean, std: std}
		for _, row := range m.data.Vectors {
			row[d] = (row[d] - mean) / std
		}
	}
	return nil
}

func (m *Map) initializeGrid() {
	count := m.side * m.side
	m.Nodes = make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		high := make([]float64, m.highDim)
		for j := range high {
			// Magnitude uniform in [0, 2), sign an independent coin
			// flip. Inherited distribution; convergence depends on it.
			sign := 1.0
			if m.rnd.Intn(2) == 0 {
				sign = -1.0
			}
			high[j] = m.rnd.Float64() * 2 * sign
		}
		m.Nodes = append(m.Nodes, &Node{
			HighCoords: high,
			LowCoords:  []float64{float64(i % m.side), float64(i / m.side)},
			Index:      i,
		})
	}
}

// FindBestMatch returns the index of the node nearest to point in the
// high-dimensional space. Ties go to the lowest index.
func (m *Map) FindBestMatch(point DataVector) (int, error) {
	if len(point) != m.highDim {
		return 0, errors.Wrapf(ErrDimensionMismatch, "point has %d values, want %d", len(point), m.highDim)
	}
	if len(m.Nodes) == 0 {
		return 0, errors.Wrap(ErrNotFound, "map has no nodes")
	}
	best := 0
	bestDist := math.Inf(1)
	for i, n := range m.Nodes {
		if d := squareDistance(n.HighCoords, point); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// Train fits the grid to the data over nsteps iterations. Each step
// samples one data row uniformly with replacement, finds its BMU and
// pulls every node within the current search radius toward the sample,
// weighted by a Gaussian of its grid distance to the BMU.
//
// The search radius decays as radius0*exp(-step/nsteps*ln(radius0)) and
// the learning rate as learn0*exp(-step/nsteps). Training stops early
// once the squared radius falls to 1.0 or below, i.e. once the
// neighborhood has shrunk to a single node.
func (m *Map) Train(nsteps int) error {
	if nsteps < 0 {
		return errors.Wrapf(ErrInvalidInput, "nsteps must be non-negative, got %d", nsteps)
	}
	radius0 := float64(m.side) / 2
	tscale := math.Log(radius0)
	for step := 0; step < nsteps; step++ {
		sample := m.data.Vectors[m.rnd.Intn(m.data.Len())]
		bmuIdx, err := m.FindBestMatch(sample)
		if err != nil {
			return err
		}

		t := float64(step) / float64(nsteps)
		radius := radius0 * math.Exp(-t*tscale)
		radiusSq := radius * radius
		rate := m.learn0 * math.Exp(-t)
		if radiusSq <= 1.0 {
			break
		}

		m.updateNodes(m.Nodes[bmuIdx], sample, radiusSq, rate)
	}
	return nil
}

// updateNodes runs one training update pass. Node updates within a pass
// are independent of each other; they share only the step's BMU grid
// position and sample, both read-only here. The pass must complete
// before the next step's best-match search reads the node coordinates.
func (m *Map) updateNodes(bmu *Node, sample DataVector, radiusSq, rate float64) {
	forEachRange(len(m.Nodes), m.workers, func(lo, hi int) {
		delta := make([]float64, m.highDim)
		for _, n := range m.Nodes[lo:hi] {
			d2 := squareDistance(n.LowCoords, bmu.LowCoords)
			if d2 >= radiusSq {
				continue
			}
			floats.SubTo(delta, sample, n.HighCoords)
			floats.Scale(rate*math.Exp(-d2/(2*radiusSq)), delta)
			floats.Add(n.HighCoords, delta)
		}
	})
}

// Classify returns the grid coordinates of the node nearest to point.
// When normalization is on the point is transformed through the stored
// parameters first. The map is not mutated.
func (m *Map) Classify(point DataVector) (DataVector, error) {
	if len(point) != m.highDim {
		return nil, errors.Wrapf(ErrDimensionMismatch, "point has %d values, want %d", len(point), m.highDim)
	}
	if m.params != nil {
		normalized, err := m.NormalizePoint(point)
		if err != nil {
			return nil, err
		}
		point = normalized
	}
	idx, err := m.FindBestMatch(point)
	if err != nil {
		return nil, err
	}
	coords := make(DataVector, m.lowDim)
	copy(coords, m.Nodes[idx].LowCoords)
	return coords, nil
}

// NormalizePoint scales point to match the normalized data.
func (m *Map) NormalizePoint(point DataVector) (DataVector, error) {
	if m.params == nil {
		return nil, errors.Wrap(ErrInvalidInput, "normalization is not enabled")
	}
	if len(point) != m.highDim {
		return nil, errors.Wrapf(ErrDimensionMismatch, "point has %d values, want %d", len(point), m.highDim)
	}
	out := make(DataVector, len(point))
	for i, p := range m.params {
		out[i] = (point[i] - p.mean) / p.std
	}
	return out, nil
}

// Unnormalize scales a normalized point back to the original data
// units, the inverse of NormalizePoint.
func (m *Map) Unnormalize(point DataVector) (DataVector, error) {
	if m.params == nil {
		return nil, errors.Wrap(ErrInvalidInput, "normalization is not enabled")
	}
	if len(point) != m.highDim {
		return nil, errors.Wrapf(ErrDimensionMismatch, "point has %d values, want %d", len(point), m.highDim)
	}
	out := make(DataVector, len(point))
	for i, p := range m.params {
		out[i] = point[i]*p.std + p.mean
	}
	return out, nil
}
