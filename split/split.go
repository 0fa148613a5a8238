// Package split partitions a table into training and test subsets.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/poiesic/netsec/core"
)

var (
	// ErrInvalidRatio is returned when the test ratio is outside (0, 1).
	ErrInvalidRatio = errors.New("test ratio must be between 0 and 1 exclusive")

	// ErrEmptySubset is returned when the table is too small for the ratio.
	ErrEmptySubset = errors.New("split would produce an empty subset")
)

// Sizes returns the number of training and test rows for n rows and the given
// test ratio. The test size is rounded up.
func Sizes(n int, ratio float64) (train, test int, err error) {
	if !(ratio > 0 && ratio < 1) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}
	test = int(math.Ceil(ratio * float64(n)))
	train = n - test
	if train < 1 || test < 1 {
		return 0, 0, fmt.Errorf("%w: rows=%d ratio=%v", ErrEmptySubset, n, ratio)
	}
	return train, test, nil
}

// TrainTestSplit shuffles the rows with a generator seeded by seed and
// returns the training and test tables. Test takes the first ceil(ratio*N)
// shuffled rows; train takes the rest. Both keep shuffled order. The input
// table is not modified.
func TrainTestSplit(table *core.Table, ratio float64, seed uint64) (train, test *core.Table, err error) {
	if table == nil {
		return nil, nil, core.ErrInvalidTable
	}

	nTrain, nTest, err := Sizes(table.Len(), ratio)
	if err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	perm := rng.Perm(table.Len())

	test = table.Subset(perm[:nTest])
	train = table.Subset(perm[nTest : nTest+nTrain])
	return train, test, nil
}
