// Package classifier implements the k-nearest-neighbour digit classifier.
//
// A KNN model is an in-memory index over labelled glyph samples. It is built
// once by Train and then queried concurrently by Predict; the index is never
// mutated after training, so Predict needs no locking.
package classifier

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

// ErrUntrained is returned when a prediction is requested from a model
// with no training samples.
var ErrUntrained = errors.New("classifier untrained: no training samples")

// DefaultK is the neighbour count used when none is configured.
const DefaultK = 3

// KNN is a k-nearest-neighbour classifier over flattened glyph rasters
// with Euclidean distance.
type KNN struct {
	k       int
	vectors [][]float64
	labels  []int
}

// NewKNN creates an empty model querying k neighbours. Values below 1
// fall back to DefaultK.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = DefaultK
	}
	return &KNN{k: k}
}

// K returns the configured neighbour count.
func (m *KNN) K() int {
	return m.k
}

// Len returns the number of training samples in the index.
func (m *KNN) Len() int {
	return len(m.labels)
}

// Train replaces the index with samples.
//
// Sample order is significant: it breaks distance ties in Predict. Every
// sample must carry a full Size×Size raster and a label in 0..9; on error
// the previous index is kept. Train must not run concurrently with Predict.
func (m *KNN) Train(samples []glyph.Sample) error {
	vectors := make([][]float64, 0, len(samples))
	labels := make([]int, 0, len(samples))

	for i, s := range samples {
		if s.Label < 0 || s.Label > 9 {
			return fmt.Errorf("sample %d: label %d outside 0..9", i, s.Label)
		}
		if len(s.Glyph.Pix) != glyph.Size*glyph.Size {
			return fmt.Errorf("sample %d: raster has %d pixels, want %d", i, len(s.Glyph.Pix), glyph.Size*glyph.Size)
		}
		vectors = append(vectors, s.Glyph.Vector())
		labels = append(labels, s.Label)
	}

	m.vectors = vectors
	m.labels = labels
	return nil
}

// Ready returns ErrUntrained while the index is empty.
func (m *KNN) Ready() error {
	if len(m.labels) == 0 {
		return ErrUntrained
	}
	return nil
}

// Neighbor is one training sample returned by Nearest.
type Neighbor struct {
	Index    int
	Label    int
	Distance float64
}

// Nearest returns the k training samples closest to g, ordered by
// ascending distance and then by training index.
func (m *KNN) Nearest(g glyph.Glyph, k int) ([]Neighbor, error) {
	if err := m.Ready(); err != nil {
		return nil, err
	}
	if len(g.Pix) != glyph.Size*glyph.Size {
		return nil, fmt.Errorf("glyph raster has %d pixels, want %d", len(g.Pix), glyph.Size*glyph.Size)
	}

	v := g.Vector()
	all := make([]Neighbor, len(m.vectors))
	for i, s := range m.vectors {
		all[i] = Neighbor{Index: i, Label: m.labels[i], Distance: floats.Distance(v, s, 2)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Distance < all[j].Distance
	})

	return all[:min(k, len(all))], nil
}

// Predict returns the majority label among the k nearest samples.
//
// When several labels collect the same number of votes, the label whose
// closest sample ranks first among the neighbours wins. With a fixed,
// ordered training set the result is therefore fully deterministic.
func (m *KNN) Predict(g glyph.Glyph) (int, error) {
	neighbors, err := m.Nearest(g, m.k)
	if err != nil {
		return 0, err
	}

	var votes [10]int
	firstRank := [10]int{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	for rank, n := range neighbors {
		votes[n.Label]++
		if firstRank[n.Label] < 0 {
			firstRank[n.Label] = rank
		}
	}

	best := -1
	for label := 0; label < 10; label++ {
		if votes[label] == 0 {
			continue
		}
		if best < 0 || votes[label] > votes[best] ||
			(votes[label] == votes[best] && firstRank[label] < firstRank[best]) {
			best = label
		}
	}

	return best, nil
}
