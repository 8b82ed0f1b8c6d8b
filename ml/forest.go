package ml

import "errors"

// Forest predicts the majority label of its trees. Ties go to the lowest label.
type Forest struct {
	trees []*DecisionTree
}

func NewForest(trees []*DecisionTree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	return &Forest{trees: trees}, nil
}

func (f *Forest) Predict(features []float64) (int, error) {
	votes := make(map[int]int)
	for _, tree := range f.trees {
		label, err := tree.Predict(features)
		if err != nil {
			return 0, err
		}
		votes[label]++
	}
	best, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best, nil
}
